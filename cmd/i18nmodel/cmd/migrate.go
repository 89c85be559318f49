package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mkoziy/i18nmodel/internal/migrations"
)

var rollback bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create source and translation tables",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&rollback, "rollback", false, "roll back the last migration group")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if rollback {
		return migrations.Rollback(cmd.Context(), a.db, a.reg, a.logger)
	}
	return migrations.RunMigrations(cmd.Context(), a.db, a.reg, a.logger)
}
