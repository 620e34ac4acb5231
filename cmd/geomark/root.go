// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads config, sets up logging, and opens the marker collection

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/harper/geomark/internal/config"
	"github.com/harper/geomark/internal/logging"
	"github.com/harper/geomark/internal/markers"
	"github.com/harper/geomark/internal/models"
	"github.com/harper/geomark/internal/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Command annotations.
const (
	// annotationNoStore marks commands that run without the marker collection.
	annotationNoStore = "geomark/no-store"
	// annotationLogFile marks commands that own the terminal and log to a file.
	annotationLogFile = "geomark/log-file"
)

var (
	cfgFile   string
	backend   string
	dataDir   string
	variantID string
	logLevel  string
	ephemeral bool
)

var (
	cfg     *config.Config
	store   storage.Store
	manager *markers.Manager
	variant models.Variant
	logger  = zerolog.Nop()
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "geomark",
	Short: "Drop, edit, and share map markers",
	Long: `
 ██████╗ ███████╗ ██████╗ ███╗   ███╗ █████╗ ██████╗ ██╗  ██╗
██╔════╝ ██╔════╝██╔═══██╗████╗ ████║██╔══██╗██╔══██╗██║ ██╔╝
██║  ███╗█████╗  ██║   ██║██╔████╔██║███████║██████╔╝█████╔╝
██║   ██║██╔══╝  ██║   ██║██║╚██╔╝██║██╔══██║██╔══██╗██╔═██╗
╚██████╔╝███████╗╚██████╔╝██║ ╚═╝ ██║██║  ██║██║  ██║██║  ██╗
 ╚═════╝ ╚══════╝ ╚═════╝ ╚═╝     ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝

       Markers on a map, with notes, photos, and dates

Examples:
  geomark add --observation "Seen a fox" 48.8566 2.3522
  geomark list
  geomark move "Point 1" 48.86 2.35
  geomark tui
  geomark --variant wildwatch share "Point 1"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd.Context(), cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/geomark/config.json)")
	flags.StringVar(&backend, "backend", "", "storage backend (sqlite, badger, memory)")
	flags.StringVar(&dataDir, "data-dir", "", "data directory")
	flags.StringVar(&variantID, "variant", "", "app variant (geomobile, wildwatch)")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&ephemeral, "ephemeral", false, "keep markers in memory only")
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if backend != "" {
		c.Backend = backend
	}
	if dataDir != "" {
		c.DataDir = dataDir
	}
	if variantID != "" {
		c.Variant = variantID
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if ephemeral {
		c.Backend = storage.BackendMemory
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

func setup(ctx context.Context, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var err error
	cfg, err = loadConfig()
	if err != nil {
		return err
	}
	variant, _ = cfg.GetVariant()

	if cmd.Annotations[annotationLogFile] == "true" {
		l, closer, err := logging.NewFile(cfg.LogLevel, cfg.GetDataDir())
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logger, logFile = l, closer
	} else {
		logger = logging.New(cfg.LogLevel, os.Stderr)
	}

	if cmd.Annotations[annotationNoStore] == "true" {
		return nil
	}

	store, err = cfg.OpenStorage(logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	manager = markers.NewManager(store, logger)
	manager.Load(ctx)
	return nil
}

func teardown() error {
	var err error
	if store != nil {
		err = store.Close()
		store = nil
	}
	manager = nil
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	return err
}

// resolveMarker finds a marker by id, id prefix, or title.
func resolveMarker(ref string) (*models.Marker, error) {
	m, err := manager.Find(ref)
	if err != nil {
		return nil, fmt.Errorf("marker %q: %w", ref, err)
	}
	return m, nil
}
