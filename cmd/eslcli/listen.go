package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jg-phare/esl/pkg/esllog"
	"github.com/jg-phare/esl/pkg/listener"
	"github.com/jg-phare/esl/pkg/session"
)

func newListenCmd() *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Accept inbound connections from FreeSWITCH's socket application and print their events",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			l, err := listener.New(bind, esllog.Default())
			if err != nil {
				return err
			}
			defer l.Close()

			fmt.Println("listening on", l.Addr())
			return l.Run(ctx, func(sess *session.Session) {
				sub := sess.Subscribe(0)
				for msg := range sub.C() {
					fmt.Printf("[%s] %s %v\n", sess.RemoteAddr(), msg.EventName(), msg.EventData)
				}
			})
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "0.0.0.0:8084", "address to accept inbound connections on")
	return cmd
}
