// ABOUTME: geomark configuration management with backend selection
// ABOUTME: Loads settings through viper from file, environment, and defaults

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/geomark/internal/models"
	"github.com/harper/geomark/internal/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GEOMARK_BACKEND.
const EnvPrefix = "GEOMARK"

// Permission values for the configured location provider.
const (
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
)

// DefaultZoom is the initial map zoom level.
const DefaultZoom = 13

// Config stores geomark configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger", or "memory".
	Backend string `json:"backend,omitempty" mapstructure:"backend"`

	// DataDir is the root directory for data storage.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/geomark.
	DataDir string `json:"data_dir,omitempty" mapstructure:"data_dir"`

	// Variant is "geomobile" (default) or "wildwatch".
	Variant string `json:"variant,omitempty" mapstructure:"variant"`

	LogLevel string `json:"log_level,omitempty" mapstructure:"log_level"`

	Location LocationConfig `json:"location" mapstructure:"location"`
	Map      MapConfig      `json:"map" mapstructure:"map"`
}

// LocationConfig feeds the static location provider.
type LocationConfig struct {
	Latitude   *float64 `json:"latitude,omitempty" mapstructure:"latitude"`
	Longitude  *float64 `json:"longitude,omitempty" mapstructure:"longitude"`
	Permission string   `json:"permission,omitempty" mapstructure:"permission"`
}

// MapConfig holds map display settings.
type MapConfig struct {
	Zoom int `json:"zoom,omitempty" mapstructure:"zoom"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return storage.BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetVariant parses the configured variant.
func (c *Config) GetVariant() (models.Variant, error) {
	return models.ParseVariant(c.Variant)
}

// GetZoom returns the configured map zoom, defaulting to DefaultZoom.
func (c *Config) GetZoom() int {
	if c.Map.Zoom <= 0 {
		return DefaultZoom
	}
	return c.Map.Zoom
}

// PermissionGranted reports whether location access is granted.
func (c *Config) PermissionGranted() bool {
	return !strings.EqualFold(strings.TrimSpace(c.Location.Permission), PermissionDenied)
}

// SetLocation records a fixed position for the location provider.
func (c *Config) SetLocation(lat, lng float64) {
	c.Location.Latitude = &lat
	c.Location.Longitude = &lng
}

// Validate checks the values a command cannot run without.
func (c *Config) Validate() error {
	switch c.GetBackend() {
	case storage.BackendSQLite, storage.BackendBadger, storage.BackendMemory:
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	if _, err := c.GetVariant(); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.Location.Permission)) {
	case "", PermissionGranted, PermissionDenied:
	default:
		return fmt.Errorf("unknown location permission: %q (use granted or denied)", c.Location.Permission)
	}
	if (c.Location.Latitude == nil) != (c.Location.Longitude == nil) {
		return errors.New("location needs both latitude and longitude")
	}
	if c.Location.Latitude != nil {
		if err := models.ValidateCoordinates(*c.Location.Latitude, *c.Location.Longitude); err != nil {
			return fmt.Errorf("location: %w", err)
		}
	}
	return nil
}

// defaultDataDir returns the default XDG data directory for geomark.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "geomark")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates the Store for the configured backend.
func (c *Config) OpenStorage(logger zerolog.Logger) (storage.Store, error) {
	return storage.Open(c.GetBackend(), c.GetDataDir(), logger)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "geomark", "config.json")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("backend", storage.BackendSQLite)
	v.SetDefault("data_dir", "")
	v.SetDefault("variant", string(models.VariantGeoMobile))
	v.SetDefault("log_level", "info")
	v.SetDefault("location.permission", PermissionGranted)
	v.SetDefault("map.zoom", DefaultZoom)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// No defaults exist for coordinates, so bind them explicitly.
	_ = v.BindEnv("location.latitude")
	_ = v.BindEnv("location.longitude")

	v.SetConfigType("json")
	return v
}

// Load reads config from path, or from GetConfigPath when path is empty.
// A missing file yields the defaults and writes them out for next time.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = GetConfigPath()
	}

	v := newViper()
	v.SetConfigFile(path)

	firstRun := false
	if err := v.ReadInConfig(); err != nil {
		if !isNotExist(err) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		firstRun = true
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if firstRun {
		if saveErr := cfg.SaveTo(path); saveErr != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", saveErr)
		}
	}
	return &cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// Save writes config to the default path.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes config to path, replacing any previous file atomically.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(path, append(data, '\n'))
}

func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user config directory
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
