package cmd

import (
	"context"
	"log"

	"github.com/incident-desk/backend/internal/db"
	"github.com/incident-desk/backend/internal/registry"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the Postgres tables and indexes, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer pool.Close()

		tables := tableNames(registry.Default())
		if err := db.NewPostgres(pool).EnsureSchema(ctx, tables); err != nil {
			return err
		}
		log.Printf("[Migrate] ensured %d tables", len(tables))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
