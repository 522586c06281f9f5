package cmd

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"portfolio-catalog/pkg/services"
)

// newShowGalleryCmd creates a new command for showing gallery details
func newShowGalleryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-gallery [slug]",
		Short: "Show the artworks in a specific gallery",
		Long:  `Show the artworks a gallery page will display, in page order, with resolved image paths.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(cmd)
			if err != nil {
				return err
			}
			gallery, err := svc.GetGallery(args[0])
			if errors.Is(err, services.ErrNotFound) {
				return WrapExitError(ExitFailure, "unknown gallery", err)
			}
			if err != nil {
				return catalogError(cmd.ErrOrStderr(), err)
			}

			out := newOutput(cmd)
			if out.isJSON() {
				return out.writeJSON(gallery)
			}
			out.printf("Gallery: %s\n", gallery.Title)
			if gallery.Subtitle != "" {
				out.printf("Subtitle: %s\n", gallery.Subtitle)
			}
			out.printf("Artworks: %d\n", len(gallery.Artworks))

			rows := make([][]string, 0, len(gallery.Artworks))
			for i, a := range gallery.Artworks {
				rows = append(rows, []string{strconv.Itoa(i + 1), a.ID, a.Title, a.Image})
			}
			out.table([]string{"#", "ID", "Title", "Image"}, rows, []columnAlignment{alignRight})
			return nil
		},
	}
}
