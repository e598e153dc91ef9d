package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/accesscore/app"
	"github.com/dmitrymomot/accesscore/core/config"
	"github.com/dmitrymomot/accesscore/core/logger"
)

type globals struct {
	logLevel string
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "accessd",
		Short: "Session and capability based access control",
		Long: `accessd resolves opaque session cookies to users, checks their
capabilities against the role graph, and hides identifiers behind
authenticated encryption.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	cmd.AddCommand(
		serveCmd(g),
		migrateCmd(g),
		seedCmd(g),
		grantCmd(g),
		revokeCmd(g),
		capsCmd(g),
		sessionCmd(g),
		idCmd(g),
		versionCmd(),
	)
	return cmd
}

// loadConfig reads app.Config and applies flag overrides.
func (g *globals) loadConfig() (app.Config, *slog.Logger, error) {
	var cfg app.Config
	if err := config.Load(&cfg); err != nil {
		return app.Config{}, nil, err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	log := app.NewLogger(cfg)
	logger.SetAsDefault(log)
	return cfg, log, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "accessd %s (%s)\n", version, commit)
		},
	}
}

func setenvDefault(key, value string) {
	if _, ok := os.LookupEnv(key); !ok {
		_ = os.Setenv(key, value)
	}
}
