package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/accesscore/app"
	"github.com/dmitrymomot/accesscore/core/session"
)

var errMemoryStore = errors.New("session commands need a persistent SESSION_BACKEND, memory does not outlive the command")

func sessionCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Create or destroy sessions in the configured store",
	}
	cmd.AddCommand(sessionCreateCmd(g), sessionDestroyCmd(g))
	return cmd
}

// withSessions opens the configured session store for one command.
func withSessions(cmd *cobra.Command, g *globals, fn func(ctx context.Context, m *session.Manager) error) error {
	cfg, log, err := g.loadConfig()
	if err != nil {
		return err
	}
	if cfg.SessionBackend == app.BackendMemory {
		return errMemoryStore
	}

	ctx := cmd.Context()
	b, err := app.OpenSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close(context.WithoutCancel(ctx)) }()

	m := session.NewManager(b.Value, session.WithConfig(cfg.Session), session.WithLogger(log))
	return fn(ctx, m)
}

func sessionCreateCmd(g *globals) *cobra.Command {
	var userID int64
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Issue a session and print its token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSessions(cmd, g, func(ctx context.Context, m *session.Manager) error {
				sess, err := m.Create(ctx, userID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "session_id: %s\n", sess.ID)
				fmt.Fprintf(out, "token:      %s\n", sess.Token)
				fmt.Fprintf(out, "expires_at: %s\n", sess.ExpiresAt.Format(time.RFC3339))
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "User ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func sessionDestroyCmd(g *globals) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy a session by token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSessions(cmd, g, func(ctx context.Context, m *session.Manager) error {
				return m.Destroy(ctx, token)
			})
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "Session token")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}
