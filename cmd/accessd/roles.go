package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/accesscore/app"
	"github.com/dmitrymomot/accesscore/core/logger"
	"github.com/dmitrymomot/accesscore/core/rbac"
)

func seedCmd(g *globals) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create roles and grant their capabilities from a YAML file",
		Long: `Seed upserts roles and capabilities and grants each role the listed
capabilities. Grants are only added, never removed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := g.loadConfig()
			if err != nil {
				return err
			}
			seed, err := rbac.LoadSeedFile(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := app.OpenPostgres(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := rbac.NewSeeder(pool).ApplySeed(ctx, seed); err != nil {
				return err
			}
			log.InfoContext(ctx, "seed applied",
				logger.Component("seed"),
				logger.Count("roles", len(seed.Roles)),
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Seed file (YAML)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

type roleFlags struct {
	userID int64
	role   string
}

func (f *roleFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.userID, "user", 0, "User ID")
	cmd.Flags().StringVar(&f.role, "role", "", "Role name")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("role")
}

func grantCmd(g *globals) *cobra.Command {
	var f roleFlags
	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Assign a role to a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeRole(cmd, g, f, "role assigned", (*rbac.Seeder).AssignRole)
		},
	}
	f.bind(cmd)
	return cmd
}

func revokeCmd(g *globals) *cobra.Command {
	var f roleFlags
	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Remove a role from a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeRole(cmd, g, f, "role unassigned", (*rbac.Seeder).UnassignRole)
		},
	}
	f.bind(cmd)
	return cmd
}

type roleOp func(s *rbac.Seeder, ctx context.Context, userID int64, role string) error

func changeRole(cmd *cobra.Command, g *globals, f roleFlags, msg string, op roleOp) error {
	_, log, err := g.loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	pool, err := app.OpenPostgres(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := op(rbac.NewSeeder(pool), ctx, f.userID, f.role); err != nil {
		return err
	}
	log.InfoContext(ctx, msg,
		logger.Component("rbac"),
		logger.UserID(f.userID),
		slog.String("role", f.role),
	)
	return nil
}

func capsCmd(g *globals) *cobra.Command {
	var userID int64
	cmd := &cobra.Command{
		Use:   "caps",
		Short: "Print the effective capabilities of a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := g.loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := app.OpenPostgres(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			resolver := rbac.NewResolver(rbac.NewPostgresRepository(pool),
				rbac.WithConfig(cfg.RBAC),
				rbac.WithLogger(log),
			)
			set, err := resolver.Capabilities(ctx, userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(set.Names(), "\n"))
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "User ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
