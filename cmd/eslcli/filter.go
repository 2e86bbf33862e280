package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newFilterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter <header> <value>",
		Short: "Install an event filter on the connection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := dialFromFlags(ctx, cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			reply, err := c.EventFilter(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if reply.IsError() {
				return fmt.Errorf("filter error: %s", reply.ReplyText())
			}
			fmt.Println(reply.ReplyText())
			return nil
		},
	}
}
