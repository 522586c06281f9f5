package cmd

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"portfolio-catalog/pkg/services"
)

// newShowHubCmd creates a new command for showing the tiles of a hub
func newShowHubCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-hub [slug]",
		Short: "Show the tiles of a specific hub",
		Long:  `Show the tiles a hub page will display, in page order, with resolved thumbnail paths.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(cmd)
			if err != nil {
				return err
			}
			hub, err := svc.GetHub(args[0])
			if errors.Is(err, services.ErrNotFound) {
				return WrapExitError(ExitFailure, "unknown hub", err)
			}
			if err != nil {
				return catalogError(cmd.ErrOrStderr(), err)
			}

			out := newOutput(cmd)
			if out.isJSON() {
				return out.writeJSON(hub)
			}
			out.printf("Hub: %s\n", hub.Title)
			out.printf("Entries: %d\n", len(hub.Tiles))

			rows := make([][]string, 0, len(hub.Tiles))
			for i, tile := range hub.Tiles {
				rows = append(rows, []string{strconv.Itoa(i + 1), tile.Title, tile.TargetURL, tile.Thumbnail})
			}
			out.table([]string{"#", "Title", "URL", "Thumbnail"}, rows, []columnAlignment{alignRight})
			return nil
		},
	}
}
