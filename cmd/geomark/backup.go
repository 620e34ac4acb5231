// ABOUTME: Backup and import commands for the YAML marker backup
// ABOUTME: Backup writes the collection out; import replaces it from a file

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harper/geomark/internal/storage"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a YAML backup of all markers",
	Long: `Create a YAML backup file containing every marker.

The backup file can be used to:
- Move markers between machines
- Restore after data loss
- Switch storage backends

Examples:
  geomark backup --output markers.yaml
  geomark backup -o ~/backups/geomark-$(date +%Y%m%d).yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		list := manager.List()
		data, err := storage.ExportToYAML(list, variant)
		if err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}

		if output == "" {
			output = fmt.Sprintf("geomark-%s.yaml", time.Now().Format("20060102-150405"))
		}

		if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for backup files
			return fmt.Errorf("failed to write backup: %w", err)
		}

		out := cmd.OutOrStdout()
		_, _ = color.New(color.FgGreen).Fprintf(out, "Backup created: %s\n", output)
		_, _ = fmt.Fprintf(out, "  %d markers\n", len(list))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import markers from a YAML backup",
	Long: `Import markers from a YAML backup file.

WARNING: This replaces the current collection.

Examples:
  geomark import markers.yaml
  geomark import --confirm ~/backups/geomark-20240501.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		imported, err := storage.ImportFromYAML(data)
		if err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		prompt := fmt.Sprintf("Replace %d markers with %d from '%s'? [y/N] ", manager.Count(), len(imported), filename)
		if !confirm && !askConfirm(cmd, prompt) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		manager.Replace(cmdContext(cmd), imported)

		out := cmd.OutOrStdout()
		_, _ = color.New(color.FgGreen).Fprintln(out, "Import complete")
		_, _ = fmt.Fprintf(out, "  %d markers in collection\n", manager.Count())
		return nil
	},
}

func init() {
	backupCmd.Flags().StringP("output", "o", "", "output file (default: geomark-YYYYMMDD-HHMMSS.yaml)")
	importCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(importCmd)
}
