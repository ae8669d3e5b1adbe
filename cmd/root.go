// Package cmd contains the command line of the digest service
package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/config"
)

var (
	noColor bool
	cfg     *config.Config
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pgsql-digest",
	Short: "Weekly digest of the pgsql-hackers mailing list",
	Long: `pgsql-digest scrapes the pgsql-hackers archive, summarizes the week's
busiest discussions with an LLM and mails the digest to subscribers.

Example usage:
  pgsql-digest serve                          # HTTP API, scheduler and stream consumer
  pgsql-digest run hourly-fetch               # fetch threads and their content once
  pgsql-digest run generate-summary \
      --start 2025-03-01 --end 2025-03-07     # summarize an explicit window
  pgsql-digest migrate                        # apply the database schema`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// initConfig loads defaults, the optional .env file and the environment.
func initConfig() error {
	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	return nil
}
