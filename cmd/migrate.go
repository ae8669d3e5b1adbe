package cmd

import (
	"github.com/spf13/cobra"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/driver"
)

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded database schema",
	Long: `Apply every embedded migration in order. The statements are idempotent,
so running migrate against an up-to-date database changes nothing.

Examples:
  pgsql-digest migrate
  pgsql-digest migrate --dry-run`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "list migrations without applying them")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	p := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())

	names, err := driver.MigrationNames()
	if err != nil {
		return err
	}

	if migrateDryRun {
		p.Header("Migrations")
		for _, name := range names {
			p.Info("%s", name)
		}
		p.Warning("dry run - no changes made")
		return nil
	}

	ctx := cmd.Context()
	db, err := driver.InitDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := driver.ApplyMigrations(ctx, db); err != nil {
		return err
	}
	p.Success("applied %d migrations to %s", len(names), cfg.Database.DBName)
	return nil
}
