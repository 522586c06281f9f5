package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"portfolio-catalog/pkg/config"
	"portfolio-catalog/pkg/logging"
	"portfolio-catalog/pkg/services"
)

// Configuration flags
var (
	siteDir      string
	basePath     string
	bucketName   string
	portNumber   string
	outputFormat string
	verbose      bool
)

// validFormats are the accepted values of --format
var validFormats = []string{"text", "json"}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "portfolio-catalog",
		Short: "Portfolio Catalog checks and previews the gallery data of a portfolio site",
		Long: `Portfolio Catalog loads the artworks, galleries and hubs of a portfolio site,
checks that they agree with each other and shows what each gallery and hub page
will contain. It can also preview the pages locally and migrate legacy gallery lists.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range validFormats {
				if f == outputFormat {
					return nil
				}
			}
			return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", outputFormat, validFormats))
		},
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&siteDir, "site", "s", "", "Set the SITE_DIR (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&basePath, "base-path", "", "Set the BASE_PATH images are resolved against (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&bucketName, "bucket", "b", "", "Set the BUCKET_NAME (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Set the PORT (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "output format (text|json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostics")

	// Add commands to root
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newListHubsCmd())
	rootCmd.AddCommand(newListGalleriesCmd())
	rootCmd.AddCommand(newShowGalleryCmd())
	rootCmd.AddCommand(newShowHubCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVerifyAssetsCmd())
	rootCmd.AddCommand(newMigrateLegacyCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	if siteDir != "" {
		os.Setenv("SITE_DIR", siteDir)
	}

	if basePath != "" {
		os.Setenv("BASE_PATH", basePath)
	}

	if bucketName != "" {
		os.Setenv("BUCKET_NAME", bucketName)
	}

	if portNumber != "" {
		os.Setenv("PORT", portNumber)
	}

	if verbose {
		os.Setenv("LOG_LEVEL", "debug")
	}

	// Load configuration from environment variables (potentially set above)
	return config.Load()
}

// setup loads configuration and builds the diagnostics logger. Diagnostics
// go to stderr so command output stays parseable.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to configure logging", err)
	}
	return cfg, logger, nil
}

// newService loads configuration and returns a catalog service for one command run
func newService(cmd *cobra.Command) (*services.Service, *slog.Logger, error) {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return nil, nil, err
	}
	return services.NewService(cfg, logger), logger, nil
}
