package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAPICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "api [command...]",
		Short: "Run a synchronous api command and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := dialFromFlags(ctx, cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			reply, err := c.Api(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if reply.IsError() {
				return fmt.Errorf("api error: %s", reply.ReplyText())
			}
			fmt.Println(reply.Body)
			return nil
		},
	}
}
