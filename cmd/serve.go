package cmd

import (
	"github.com/spf13/cobra"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/bootstrap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API, the scheduler and the stream consumer",
	Long: `Start the long-running service. Runs until SIGINT or SIGTERM.

The hourly fetch and weekly digest jobs follow the SCHEDULE_* settings and the
Redis trigger consumer starts only when REDIS_TRIGGER_ENABLED is true.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.Run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
