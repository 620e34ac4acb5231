// ABOUTME: Marker remove command
// ABOUTME: Runs the form delete flow after confirmation

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/geomark/internal/form"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id|title>",
	Aliases: []string{"rm"},
	Short:   "Remove a marker",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)

		target, err := resolveMarker(args[0])
		if err != nil {
			return err
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm && !askConfirm(cmd, fmt.Sprintf("Remove '%s'? [y/N] ", target.Title)) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		ctrl := form.NewController(manager, variant, logger)
		if err := ctrl.OpenEdit(target); err != nil {
			return err
		}
		if err := ctrl.Delete(ctx); err != nil {
			return fmt.Errorf("failed to remove marker: %w", err)
		}

		_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Removed %s\n", target.Title)
		return nil
	},
}

func init() {
	removeCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(removeCmd)
}

// askConfirm prints prompt and reads a y/yes answer from the command's input.
func askConfirm(cmd *cobra.Command, prompt string) bool {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
