package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

// newListGalleriesCmd creates a new command for listing galleries
func newListGalleriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-galleries",
		Short: "List all galleries",
		Long:  `List all galleries with the number of artworks that belong to each.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(cmd)
			if err != nil {
				return err
			}
			galleries, err := svc.GetGalleries()
			if err != nil {
				return catalogError(cmd.ErrOrStderr(), err)
			}

			out := newOutput(cmd)
			if out.isJSON() {
				return out.writeJSON(galleries)
			}
			total := 0
			rows := make([][]string, 0, len(galleries))
			for _, g := range galleries {
				rows = append(rows, []string{g.Slug, g.Title, strconv.Itoa(len(g.Artworks))})
				total += len(g.Artworks)
			}
			out.table([]string{"Slug", "Title", "Artworks"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight})
			out.printf("Total: %d galleries, %d memberships\n", len(galleries), total)
			return nil
		},
	}
}
