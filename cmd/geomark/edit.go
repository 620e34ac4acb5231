// ABOUTME: Marker edit and move commands
// ABOUTME: Edit runs the form edit flow; move relocates a pin like a map drag

package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/geomark/internal/form"
	"github.com/harper/geomark/internal/mapview"
	"github.com/harper/geomark/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:     "edit <id|title>",
	Aliases: []string{"e"},
	Short:   "Edit a marker's fields",
	Long: `Edit a marker. Only the flags you pass are changed; a blank title is ignored.

Examples:
  geomark edit "Point 1" --title "Fox den"
  geomark edit 0190a1b2 --observation "Two cubs" --image ~/cubs.jpg
  geomark edit "Fox den" --image ""`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)

		target, err := resolveMarker(args[0])
		if err != nil {
			return err
		}

		changed := false
		for _, name := range []string{"title", "observation", "image", "date"} {
			changed = changed || cmd.Flags().Changed(name)
		}
		if !changed {
			return errors.New("nothing to change (use --title, --observation, --image, or --date)")
		}

		ctrl := form.NewController(manager, variant, logger)
		if err := ctrl.OpenEdit(target); err != nil {
			return err
		}
		if err := applyDraftFlags(ctx, cmd, ctrl); err != nil {
			ctrl.Cancel()
			return err
		}
		saved := ctrl.Save(ctx)
		if saved == nil {
			return fmt.Errorf("marker %q disappeared while editing", target.Title)
		}

		_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Updated %s\n", saved.Title)
		return nil
	},
}

var moveCmd = &cobra.Command{
	Use:     "move <id|title> <latitude> <longitude>",
	Aliases: []string{"mv"},
	Short:   "Move a marker to new coordinates",
	Long: `Move a marker. Only its coordinates change.

Examples:
  geomark move "Point 1" 48.86 2.35
  geomark move 0190a1b2 -- -33.8688 151.2093`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)

		target, err := resolveMarker(args[0])
		if err != nil {
			return err
		}
		loc, err := parseLocation(args[1], args[2])
		if err != nil {
			return err
		}

		ctrl := form.NewController(manager, variant, logger)
		in := mapview.NewInteractions(ctrl, manager, logger)
		if !in.OnMarkerDragStart(target.ID) {
			return fmt.Errorf("marker %q cannot be moved", target.Title)
		}
		if !in.OnMarkerDragEnd(ctx, target.ID, loc) {
			return fmt.Errorf("failed to move marker %q", target.Title)
		}

		_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Moved %s to %s\n",
			target.Title, ui.FormatCoordinates(loc.Latitude, loc.Longitude))
		return nil
	},
}

func init() {
	addDraftFlags(editCmd)

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(moveCmd)
}
