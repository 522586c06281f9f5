package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"portfolio-catalog/pkg/assets"
	"portfolio-catalog/pkg/catalog"
	"portfolio-catalog/pkg/config"
	"portfolio-catalog/pkg/services"
)

// Command options
var (
	decodeImages   bool
	findDuplicates bool
	bucketPrefix   string
)

// newVerifyAssetsCmd creates a new command for verifying catalog images
func newVerifyAssetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-assets",
		Short: "Check that every referenced image exists",
		Long: `Check that every artwork image and hub thumbnail exists in the site directory,
or in a Cloud Storage bucket when --bucket is set. Missing files are listed with
similarly named files from the same directory, and artwork records that point at
the same image are reported as shared.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open asset store", err)
			}
			defer closeStore()

			return verifyAssets(ctx, cmd, cfg, store, logger)
		},
	}

	// Add command-specific flags
	cmd.Flags().BoolVar(&decodeImages, "decode", false, "Decode every image and report unreadable or blank files")
	cmd.Flags().BoolVar(&findDuplicates, "duplicates", false, "Also report images with identical content")
	cmd.Flags().StringVar(&bucketPrefix, "prefix", "", "Object name prefix that maps to the site root in the bucket")

	return cmd
}

// openStore picks the bucket when one is configured and the site directory otherwise
func openStore(ctx context.Context, cfg *config.Config) (assets.Store, func(), error) {
	if cfg.RequireBucket() != nil {
		return assets.DiskStore{Root: cfg.SiteDir}, func() {}, nil
	}
	store, err := assets.NewBucketStore(ctx, cfg.BucketName, bucketPrefix)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

type verifyResult struct {
	Problems   []assets.Problem      `json:"problems"`
	Duplicates []assets.DuplicateSet `json:"duplicates,omitempty"`
}

// verifyAssets checks the catalog's images against store
func verifyAssets(ctx context.Context, cmd *cobra.Command, cfg *config.Config, store assets.Store, logger *slog.Logger) error {
	c, err := services.NewService(cfg, logger).Catalog()
	if err != nil {
		return catalogError(cmd.ErrOrStderr(), err)
	}

	rule := catalog.PathRule{BasePath: cfg.BasePath}
	problems, err := assets.Verify(ctx, store, c, rule, assets.Options{Decode: decodeImages})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to verify assets", err)
	}
	result := verifyResult{Problems: problems}

	if findDuplicates {
		// the directory the base path names
		prefix, _ := assets.ObjectName(rule, ".")
		logger.Debug("hashing images", slog.String("prefix", prefix))
		result.Duplicates, err = assets.Duplicates(ctx, store, prefix)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to hash images", err)
		}
	}

	out := newOutput(cmd)
	if out.isJSON() {
		if err := out.writeJSON(result); err != nil {
			return err
		}
	} else {
		printVerifyResult(out, result, len(c.Artworks()))
	}

	if len(problems) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d image reference(s) failed verification", len(problems)))
	}
	return nil
}

func printVerifyResult(out *output, result verifyResult, artworks int) {
	out.printf("Checked %d artworks and their hub thumbnails\n", artworks)
	if len(result.Problems) == 0 {
		out.printf("All image references are valid.\n")
	} else {
		rows := make([][]string, 0, len(result.Problems))
		for _, p := range result.Problems {
			subject := p.Subject
			if p.Entry > 0 {
				subject = fmt.Sprintf("%s #%d", p.Subject, p.Entry)
			}
			note := p.Detail
			if p.Kind == assets.MissingImage || p.Kind == assets.MissingThumbnail {
				note = "no similar files"
				if len(p.Similar) > 0 {
					note = "similar: " + strings.Join(p.Similar, ", ")
				}
			}
			rows = append(rows, []string{string(p.Kind), subject, p.Object, note})
		}
		out.table([]string{"Problem", "Subject", "Object", "Note"}, rows, nil)
	}

	if !findDuplicates {
		return
	}
	if len(result.Duplicates) == 0 {
		out.printf("No duplicate images found.\n")
		return
	}
	var wasted int64
	rows := make([][]string, 0, len(result.Duplicates))
	for _, d := range result.Duplicates {
		wasted += d.Wasted()
		rows = append(rows, []string{d.Hash[:16], strconv.Itoa(len(d.Files)), strings.Join(d.Files, "\n")})
	}
	out.table([]string{"Hash", "Copies", "Files"}, rows, []columnAlignment{alignLeft, alignRight})
	out.printf("Duplicate sets: %d, potential savings: %.1f MB\n", len(result.Duplicates), float64(wasted)/1024/1024)
}
