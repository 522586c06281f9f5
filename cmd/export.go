package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newExportCmd creates a new command for exporting the resolved catalog
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [format]",
		Short: "Export the resolved hubs and galleries",
		Long:  `Export every hub and gallery as the page templates see them. Supported formats: json, yaml.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := "json"
			if len(args) > 0 {
				format = args[0]
			}
			if format != "json" && format != "yaml" {
				return NewExitError(ExitCommandError, fmt.Sprintf("unsupported export format: %s (supported formats: json, yaml)", format))
			}

			svc, _, err := newService(cmd)
			if err != nil {
				return err
			}
			index, err := svc.GetIndex()
			if err != nil {
				return catalogError(cmd.ErrOrStderr(), err)
			}

			out := newOutput(cmd)
			if format == "json" {
				return out.writeJSON(index)
			}
			enc := yaml.NewEncoder(out.w)
			enc.SetIndent(2)
			if err := enc.Encode(index); err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
			return enc.Close()
		},
	}
}
