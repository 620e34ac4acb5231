// ABOUTME: Marker share and locate commands
// ABOUTME: Share prints the observation message; locate runs the location request

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/geomark/internal/form"
	"github.com/harper/geomark/internal/location"
	"github.com/spf13/cobra"
)

var shareCmd = &cobra.Command{
	Use:   "share <id|title>",
	Short: "Print a marker's share message (wildwatch)",
	Long: `Print the text WildWatch shares for an observation: title, notes, date, and position.

Examples:
  geomark --variant wildwatch share "Fox den"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := resolveMarker(args[0])
		if err != nil {
			return err
		}

		ctrl := form.NewController(manager, variant, logger)
		if err := ctrl.OpenEdit(target); err != nil {
			return err
		}
		defer ctrl.Cancel()

		msg, err := ctrl.Share()
		if err != nil {
			return fmt.Errorf("%s: %w", variant.DisplayName(), err)
		}

		out := cmd.OutOrStdout()
		_, _ = color.New(color.Bold).Fprintln(out, msg.Title)
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, msg.Body)
		return nil
	},
}

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Request the current location",
	Long: `Run the location request against the configured provider and report
which screen the interactive map would open on.

The provider answers from config: location.permission, location.latitude,
and location.longitude.`,
	Annotations: map[string]string{annotationNoStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := location.NewStaticProvider(cfg.PermissionGranted(), cfg.Location.Latitude, cfg.Location.Longitude)
		tracker := location.NewTracker(provider, logger)
		status := tracker.Request(cmdContext(cmd))

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "Status:   %s\n", status)
		_, _ = fmt.Fprintf(out, "Screen:   %s\n", tracker.Screen())
		if pos, ok := tracker.Position(); ok {
			_, _ = fmt.Fprintf(out, "Position: %s\n", color.CyanString(pos.String()))
		} else {
			_, _ = fmt.Fprintf(out, "Position: %s\n", color.New(color.Faint).Sprint("unknown"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(locateCmd)
}
