package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCheckCmd creates a new command for checking catalog consistency
func newCheckCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the catalog for broken links and orphaned artworks",
		Long: `Load the catalog and report every broken hub link, orphan membership,
unreachable artwork and ambiguous thumbnail path. Findings do not fail the
command unless --strict is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(cmd)
			if err != nil {
				return err
			}
			report, err := svc.Check()
			if err != nil {
				return catalogError(cmd.ErrOrStderr(), err)
			}

			out := newOutput(cmd)
			if out.isJSON() {
				if err := out.writeJSON(report); err != nil {
					return err
				}
			} else if err := report.WriteText(out.w); err != nil {
				return err
			}

			if strict && !report.Clean() {
				return NewExitError(ExitFailure, fmt.Sprintf("check failed: %d finding(s)", len(report.Findings)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with status 1 when there are findings")
	return cmd
}
