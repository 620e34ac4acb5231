// ABOUTME: Marker add command
// ABOUTME: Runs the form create flow at the given coordinates

package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harper/geomark/internal/form"
	"github.com/harper/geomark/internal/media"
	"github.com/harper/geomark/internal/models"
	"github.com/harper/geomark/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add <latitude> <longitude>",
	Aliases: []string{"a"},
	Short:   "Drop a marker",
	Long: `Drop a new marker at a coordinate. The title defaults to "Point N".

Examples:
  geomark add 48.8566 2.3522
  geomark add --observation "Seen a fox" 48.8566 2.3522
  geomark add --title "Heron" --image ~/heron.jpg 45.764 4.8357
  geomark --variant wildwatch add --date 2024-05-01 45.764 4.8357`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)

		loc, err := parseLocation(args[0], args[1])
		if err != nil {
			return err
		}

		ctrl := form.NewController(manager, variant, logger)
		if err := ctrl.OpenCreate(loc); err != nil {
			return err
		}
		if err := applyDraftFlags(ctx, cmd, ctrl); err != nil {
			ctrl.Cancel()
			return err
		}
		saved := ctrl.Save(ctx)
		if saved == nil {
			return fmt.Errorf("failed to create marker")
		}

		out := cmd.OutOrStdout()
		_, _ = color.New(color.FgGreen).Fprintf(out, "✓ Added %s\n", saved.Title)
		_, _ = fmt.Fprintf(out, "  %s @ %s\n",
			color.New(color.Faint).Sprint(ui.ShortID(saved.ID)),
			ui.FormatCoordinates(saved.Latitude, saved.Longitude))
		return nil
	},
}

func init() {
	addDraftFlags(addCmd)
	addCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(addCmd)
}

// addDraftFlags registers the marker field flags shared by add and edit.
func addDraftFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("title", "t", "", "marker title")
	cmd.Flags().StringP("observation", "n", "", "observation notes")
	cmd.Flags().StringP("image", "i", "", "path to a photo (empty to remove)")
	cmd.Flags().StringP("date", "d", "", "observation date, YYYY-MM-DD or RFC3339 (wildwatch)")
}

// applyDraftFlags copies the flags the user set into the open form.
func applyDraftFlags(ctx context.Context, cmd *cobra.Command, ctrl *form.Controller) error {
	flags := cmd.Flags()

	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		if err := models.ValidateTitle(title); err != nil {
			return err
		}
		if err := ctrl.SetTitle(title); err != nil {
			return err
		}
	}
	if flags.Changed("observation") {
		obs, _ := flags.GetString("observation")
		if err := ctrl.SetObservation(obs); err != nil {
			return err
		}
	}
	if flags.Changed("image") {
		path, _ := flags.GetString("image")
		if path == "" {
			if err := ctrl.SetImageURL(""); err != nil {
				return err
			}
		} else if err := ctrl.PickImage(ctx, media.NewFilePicker(path)); err != nil {
			return fmt.Errorf("invalid image: %w", err)
		}
	}
	if flags.Changed("date") {
		date, _ := flags.GetString("date")
		if err := ctrl.SetDate(date); err != nil {
			return err
		}
	}
	return nil
}

// parseLocation parses and validates a latitude/longitude pair.
func parseLocation(latStr, lngStr string) (models.SelectedLocation, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return models.SelectedLocation{}, fmt.Errorf("invalid latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return models.SelectedLocation{}, fmt.Errorf("invalid longitude: %w", err)
	}
	if err := models.ValidateCoordinates(lat, lng); err != nil {
		return models.SelectedLocation{}, err
	}
	return models.SelectedLocation{Latitude: lat, Longitude: lng}, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
