package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/accesscore/app"
	"github.com/dmitrymomot/accesscore/integration/database/pg"
	"github.com/dmitrymomot/accesscore/internal/db/migrations"
)

func migrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending role graph migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := g.loadConfig()
			if err != nil {
				return err
			}
			pc, err := app.PostgresConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := app.OpenPostgres(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			return pg.Migrate(ctx, pool, pc, migrations.FS, log)
		},
	}
}
