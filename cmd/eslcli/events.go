package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jg-phare/esl/pkg/frame"
)

func newEventsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Subscribe to the event stream and print each event as it arrives",
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := frame.ParseFormatType(format)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			c, err := dialFromFlags(ctx, cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			if _, err := c.SetEventFormat(ctx, ft); err != nil {
				return err
			}

			sub := c.Events(0)
			for {
				select {
				case msg, ok := <-sub.C():
					if !ok {
						return nil
					}
					fmt.Printf("%s %v\n", msg.EventName(), msg.EventData)
				case <-ctx.Done():
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "plain", "event wire format: plain, json, xml")
	return cmd
}
