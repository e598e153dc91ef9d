package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/accesscore/app"
	"github.com/dmitrymomot/accesscore/core/logger"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		dev      bool
		seedFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server with the request gate, session and permission
guards, health probes and Prometheus metrics.

--dev switches both backends to memory, enables /dev/login and fills in
throwaway codec secrets when IDCODEC_* is unset. Never use it in production.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dev {
				setenvDefault("APP_ENV", "development")
				setenvDefault("SESSION_BACKEND", app.BackendMemory)
				setenvDefault("RBAC_BACKEND", app.BackendMemory)
				setenvDefault("IDCODEC_SECRET", "development only secret")
				setenvDefault("IDCODEC_SALT", "development-salt")
			}
			if seedFile != "" {
				setenvDefault("RBAC_SEED_FILE", seedFile)
			}

			cfg, log, err := g.loadConfig()
			if err != nil {
				return err
			}
			cfg.DevRoutes = dev

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, app.WithLogger(log))
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(context.WithoutCancel(ctx)); err != nil {
					log.Error("failed to close backends", logger.Error(err))
				}
			}()

			return a.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&dev, "dev", false, "Use in-memory backends and development defaults")
	cmd.Flags().StringVar(&seedFile, "seed", "", "Role seed file applied to the memory role graph")
	return cmd
}
