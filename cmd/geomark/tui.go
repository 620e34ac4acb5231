// ABOUTME: Interactive map and MCP server commands
// ABOUTME: Both run until the user quits or a signal arrives

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/geomark/internal/location"
	"github.com/harper/geomark/internal/mcp"
	"github.com/harper/geomark/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive map",
	Long: `Open the interactive map in the terminal.

Keys: arrows or hjkl move the cursor, enter drops or edits a marker,
m picks a marker up and enter drops it, c re-centers on you,
+/- zoom, q quits. Logs go to geomark.log in the data directory.`,
	Annotations: map[string]string{annotationLogFile: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := location.NewStaticProvider(cfg.PermissionGranted(), cfg.Location.Latitude, cfg.Location.Longitude)

		return tui.Run(cmdContext(cmd), tui.Options{
			Markers: manager,
			Tracker: location.NewTracker(provider, logger),
			Variant: variant,
			Zoom:    cfg.GetZoom(),
			Logger:  logger,
		})
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(manager, variant)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmdContext(cmd))
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(mcpCmd)
}
