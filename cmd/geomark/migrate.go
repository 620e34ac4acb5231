// ABOUTME: Migration command for copying markers between storage backends
// ABOUTME: Supports sqlite and badger targets with safety checks

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/geomark/internal/config"
	"github.com/harper/geomark/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate markers between storage backends",
	Long: `Copy the marker collection from the configured backend to another backend.

Does NOT update the config file; verify the migration was successful then
update config.json (or run with --backend) to switch.

Examples:
  geomark migrate --to badger
  geomark migrate --to sqlite --data-dir ~/geomark-sqlite
  geomark migrate --to badger --force`,
	RunE: runMigrate,
}

var (
	migrateTo      string
	migrateDataDir string
	migrateForce   bool
)

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target backend (sqlite or badger)")
	migrateCmd.Flags().StringVar(&migrateDataDir, "data-dir", "", "target data directory (defaults to current config data_dir)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite markers already in the target")
	_ = migrateCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)
	out := cmd.OutOrStdout()

	sourceBackend := cfg.GetBackend()
	targetBackend := migrateTo

	if targetBackend != storage.BackendSQLite && targetBackend != storage.BackendBadger {
		return fmt.Errorf("invalid target backend %q: must be %q or %q", targetBackend, storage.BackendSQLite, storage.BackendBadger)
	}

	targetDataDir := cfg.GetDataDir()
	if migrateDataDir != "" {
		targetDataDir = config.ExpandPath(migrateDataDir)
	}
	if targetBackend == sourceBackend && targetDataDir == cfg.GetDataDir() {
		return fmt.Errorf("target backend %q is the same as the current backend", targetBackend)
	}

	// A separate target directory is expected to be fresh.
	if targetDataDir != cfg.GetDataDir() {
		nonEmpty, err := storage.IsDirNonEmpty(targetDataDir)
		if err != nil {
			return fmt.Errorf("check target directory: %w", err)
		}
		if nonEmpty && !migrateForce {
			return fmt.Errorf("target directory %q is not empty; use --force to overwrite", targetDataDir)
		}
	}

	dst, err := storage.Open(targetBackend, targetDataDir, logger)
	if err != nil {
		return fmt.Errorf("open target storage (%s): %w", targetBackend, err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: closing target storage: %v\n", cerr)
		}
	}()

	if !migrateForce {
		has, err := storage.HasCollection(ctx, dst)
		if err != nil {
			return fmt.Errorf("check target storage: %w", err)
		}
		if has {
			return fmt.Errorf("target %s store already holds markers; use --force to overwrite", targetBackend)
		}
	}

	_, _ = color.New(color.FgYellow).Fprintln(out, "Migrating markers:")
	_, _ = fmt.Fprintf(out, "  Source:  %s (%s)\n", sourceBackend, cfg.GetDataDir())
	_, _ = fmt.Fprintf(out, "  Target:  %s (%s)\n", targetBackend, targetDataDir)
	_, _ = fmt.Fprintln(out)

	summary, err := storage.MigrateData(ctx, store, dst)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	_, _ = color.New(color.FgGreen).Fprintln(out, "Migration complete!")
	_, _ = fmt.Fprintf(out, "  Markers: %d\n", summary.Markers)
	_, _ = fmt.Fprintf(out, "  Bytes:   %d\n", summary.Bytes)
	_, _ = fmt.Fprintln(out)
	_, _ = color.New(color.FgYellow).Fprintln(out, "Note: config.json was NOT updated. To switch to the new backend, edit:")
	_, _ = fmt.Fprintf(out, "  %s\n", configPath())
	_, _ = fmt.Fprintf(out, "  Set \"backend\": %q", targetBackend)
	if migrateDataDir != "" {
		_, _ = fmt.Fprintf(out, " and \"data_dir\": %q", migrateDataDir)
	}
	_, _ = fmt.Fprintln(out)

	return nil
}
