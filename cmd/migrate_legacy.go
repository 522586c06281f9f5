package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"portfolio-catalog/pkg/catalog"
	"portfolio-catalog/pkg/config"
	"portfolio-catalog/pkg/legacy"
	"portfolio-catalog/pkg/services"
)

// newMigrateLegacyCmd creates a new command for converting legacy gallery lists
func newMigrateLegacyCmd() *cobra.Command {
	var (
		listsDir  string
		dryRun    bool
		checkTags bool
	)
	cmd := &cobra.Command{
		Use:   "migrate-legacy",
		Short: "Convert legacy per-gallery image lists into artwork files",
		Long: `Read the legacy per-gallery lists (default: <data dir>/galleries/*.yml) and write one
artwork file per distinct image, carrying every gallery that listed it. Existing
artwork files are never overwritten.

With --check-tags nothing is written; instead every list entry whose artwork is
missing or not tagged for that gallery is reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			if listsDir == "" {
				listsDir = filepath.Join(cfg.SiteDir, cfg.Layout.DataDir, "galleries")
			}
			lists, err := legacy.ReadLists(listsDir)
			if err != nil {
				return catalogError(cmd.ErrOrStderr(), err)
			}
			logger.Debug("legacy lists read", slog.String("dir", listsDir), slog.Int("lists", len(lists)))

			if checkTags {
				return checkLegacyTags(cmd, cfg, logger, lists)
			}
			return migrateLists(cmd, cfg, lists, dryRun)
		},
	}

	cmd.Flags().StringVar(&listsDir, "from", "", "Directory holding the legacy gallery lists")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be written without writing")
	cmd.Flags().BoolVar(&checkTags, "check-tags", false, "Report list entries whose artwork is not tagged for the gallery")

	return cmd
}

type migrateResult struct {
	DryRun  bool     `json:"dry_run"`
	Written []string `json:"written"`
	Skipped []string `json:"skipped"`
}

func migrateLists(cmd *cobra.Command, cfg *config.Config, lists []legacy.List, dryRun bool) error {
	artworks := legacy.Convert(lists)
	dir := filepath.Join(cfg.SiteDir, cfg.Layout.ArtworksDir)
	written, err := legacy.WriteArtworks(dir, artworks, dryRun)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to write artworks", err)
	}

	out := newOutput(cmd)
	if out.isJSON() {
		return out.writeJSON(migrateResult{DryRun: dryRun, Written: written.Written, Skipped: written.Skipped})
	}

	multi := 0
	for _, a := range artworks {
		if len(a.Galleries) > 1 {
			multi++
		}
	}
	out.printf("Found %d legacy lists, %d unique artworks (%d in several galleries)\n", len(lists), len(artworks), multi)
	verb := "Wrote"
	if dryRun {
		verb = "Would write"
	}
	out.printf("%s %d artwork files to %s\n", verb, len(written.Written), dir)
	for _, name := range written.Skipped {
		out.printf("  skipped %s: file exists\n", name)
	}
	return nil
}

func checkLegacyTags(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, lists []legacy.List) error {
	c, err := services.NewService(cfg, logger).Catalog()
	if err != nil {
		return catalogError(cmd.ErrOrStderr(), err)
	}
	drift := legacy.FindDrift(lists, c, catalog.PathRule{BasePath: cfg.BasePath})

	out := newOutput(cmd)
	if out.isJSON() {
		if err := out.writeJSON(drift); err != nil {
			return err
		}
	} else if len(drift) == 0 {
		out.printf("All %d legacy lists agree with the catalog.\n", len(lists))
	} else {
		rows := make([][]string, 0, len(drift))
		for _, d := range drift {
			rows = append(rows, []string{filepath.Base(d.File), strconv.Itoa(d.Line), string(d.Kind), d.Message})
		}
		out.table([]string{"File", "Line", "Kind", "Message"}, rows, []columnAlignment{alignLeft, alignRight})
	}

	if len(drift) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d legacy list entries disagree with the catalog", len(drift)))
	}
	return nil
}
