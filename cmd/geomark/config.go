// ABOUTME: Config commands to show, initialize, and edit the configuration
// ABOUTME: The location settings feed the location provider used by tui and locate

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/geomark/internal/config"
	"github.com/harper/geomark/internal/storage"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the effective configuration",
	Annotations: map[string]string{annotationNoStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		label := color.New(color.Faint).SprintFunc()

		_, _ = fmt.Fprintf(out, "%s %s\n", label("config:    "), configPath())
		_, _ = fmt.Fprintf(out, "%s %s\n", label("backend:   "), cfg.GetBackend())
		_, _ = fmt.Fprintf(out, "%s %s\n", label("data dir:  "), cfg.GetDataDir())
		if p := storage.BackendPath(cfg.GetBackend(), cfg.GetDataDir()); p != "" {
			_, _ = fmt.Fprintf(out, "%s %s\n", label("storage:   "), p)
		}
		_, _ = fmt.Fprintf(out, "%s %s\n", label("variant:   "), variant.DisplayName())
		_, _ = fmt.Fprintf(out, "%s %d\n", label("map zoom:  "), cfg.GetZoom())

		permission := config.PermissionDenied
		if cfg.PermissionGranted() {
			permission = config.PermissionGranted
		}
		_, _ = fmt.Fprintf(out, "%s %s\n", label("permission:"), permission)
		if cfg.Location.Latitude != nil && cfg.Location.Longitude != nil {
			_, _ = fmt.Fprintf(out, "%s %.6f, %.6f\n", label("location:  "), *cfg.Location.Latitude, *cfg.Location.Longitude)
		} else {
			_, _ = fmt.Fprintf(out, "%s %s\n", label("location:  "), "not set")
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	// Runs before any config exists, so it skips the root setup.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}

		c := &config.Config{
			Backend:  storage.BackendSQLite,
			Variant:  "geomobile",
			LogLevel: "info",
			Location: config.LocationConfig{Permission: config.PermissionGranted},
			Map:      config.MapConfig{Zoom: config.DefaultZoom},
		}
		c.DataDir = c.GetDataDir()
		if backend != "" {
			c.Backend = backend
		}
		if dataDir != "" {
			c.DataDir = dataDir
		}
		if variantID != "" {
			c.Variant = strings.ToLower(variantID)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := c.SaveTo(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
		return nil
	},
}

var configLocationCmd = &cobra.Command{
	Use:   "set-location <latitude> <longitude>",
	Short: "Set the position reported by the location provider",
	Long: `Set the position and permission the location provider answers with.

Examples:
  geomark config set-location 48.8566 2.3522
  geomark config set-location --permission denied 0 0
  geomark config set-location -- -33.8688 151.2093`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{annotationNoStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := parseLocation(args[0], args[1])
		if err != nil {
			return err
		}

		// Reload so global flag overrides are not written back.
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("permission") {
			permission, _ := cmd.Flags().GetString("permission")
			c.Location.Permission = strings.ToLower(permission)
		}
		c.SetLocation(loc.Latitude, loc.Longitude)
		if err := c.Validate(); err != nil {
			return err
		}
		if err := c.SaveTo(configPath()); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Location set to %s\n", loc)
		return nil
	},
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.GetConfigPath()
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
	configLocationCmd.Flags().String("permission", config.PermissionGranted, "location permission (granted, denied)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configLocationCmd)
	rootCmd.AddCommand(configCmd)
}
