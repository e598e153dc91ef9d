package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/accesscore/app"
)

func idCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "id",
		Short: "Encode or decode client-visible identifiers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "encode <id>",
		Short: "Encode a numeric identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := g.loadConfig(); err != nil {
				return err
			}
			n, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			codec, err := app.OpenCodec()
			if err != nil {
				return err
			}
			token, err := codec.Encode(n)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "decode <token>",
		Short: "Decode an identifier token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := g.loadConfig(); err != nil {
				return err
			}
			codec, err := app.OpenCodec()
			if err != nil {
				return err
			}
			n, err := codec.Decode(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	})

	return cmd
}
