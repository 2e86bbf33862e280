package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jg-phare/esl/pkg/client"
	"github.com/jg-phare/esl/pkg/escfg"
	"github.com/jg-phare/esl/pkg/esllog"
)

// dialFromFlags builds a client.Client from --config if set, otherwise
// from --address/--password.
func dialFromFlags(ctx context.Context, cmd *cobra.Command) (*client.Client, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := escfg.Load(configPath)
		if err != nil {
			return nil, err
		}
		return client.New(ctx, cfg.Client.Address, cfg.Client.Password, esllog.Default())
	}

	address, _ := cmd.Flags().GetString("address")
	password, _ := cmd.Flags().GetString("password")
	return client.New(ctx, address, password, esllog.Default())
}
