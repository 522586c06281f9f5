package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

// newListHubsCmd creates a new command for listing hubs
func newListHubsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-hubs",
		Short: "List all hubs",
		Long:  `List all hub pages with the number of entries on each.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(cmd)
			if err != nil {
				return err
			}
			hubs, err := svc.GetHubs()
			if err != nil {
				return catalogError(cmd.ErrOrStderr(), err)
			}

			out := newOutput(cmd)
			if out.isJSON() {
				return out.writeJSON(hubs)
			}
			rows := make([][]string, 0, len(hubs))
			for _, h := range hubs {
				rows = append(rows, []string{h.Slug, h.Title, strconv.Itoa(len(h.Tiles))})
			}
			out.table([]string{"Slug", "Title", "Entries"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight})
			out.printf("Total: %d hubs\n", len(hubs))
			return nil
		},
	}
}
