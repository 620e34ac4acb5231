// ABOUTME: Marker list and show commands
// ABOUTME: Prints the collection in creation order or a single marker in detail

package main

import (
	"fmt"

	"github.com/harper/geomark/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all markers",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		list := manager.List()

		if len(list) == 0 {
			_, _ = fmt.Fprintln(out, "No markers yet. Use 'geomark add' to drop one.")
			return nil
		}

		for _, m := range list {
			_, _ = fmt.Fprintln(out, ui.FormatMarkerLine(m))
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id|title>",
	Short: "Show a marker in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := resolveMarker(args[0])
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), ui.FormatMarkerDetail(m, variant.Features()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
