// Command eslserver demonstrates an ESL inbound listener: it accepts
// connections from FreeSWITCH's socket dialplan application, journals
// every inbound event to disk, and serves a WebSocket feed of the same
// events for a live dashboard to consume.
//
// Usage:
//
//	go run ./cmd/eslserver -bind 0.0.0.0:8084 -journal ./events.jsonl -monitor 127.0.0.1:9090
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/jg-phare/esl/pkg/esllog"
	"github.com/jg-phare/esl/pkg/journal"
	"github.com/jg-phare/esl/pkg/listener"
	"github.com/jg-phare/esl/pkg/monitor"
	"github.com/jg-phare/esl/pkg/session"
)

func main() {
	bind := flag.String("bind", "0.0.0.0:8084", "address to accept inbound ESL connections on")
	journalPath := flag.String("journal", "./esl-events.jsonl", "path to the durable event journal")
	monitorAddr := flag.String("monitor", "127.0.0.1:9090", "address to serve the WebSocket monitor feed on")
	flag.Parse()

	logger := esllog.Default()

	jr, err := journal.Open(*journalPath, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: opening journal:", err)
		os.Exit(1)
	}
	defer jr.Close()

	l, err := listener.New(*bind, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: starting listener:", err)
		os.Exit(1)
	}
	defer l.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mux := http.NewServeMux()
	go func() {
		if err := http.ListenAndServe(*monitorAddr, mux); err != nil {
			logger.Errorf("eslserver: monitor server exited: %v", err)
		}
	}()

	fmt.Printf("accepting ESL connections on %s, journaling to %s, monitor on %s\n", l.Addr(), *journalPath, *monitorAddr)

	err = l.Run(ctx, func(sess *session.Session) {
		handle(ctx, sess, jr, mux, logger)
	})
	if err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, "Error: listener stopped:", err)
		os.Exit(1)
	}
}

func handle(ctx context.Context, sess *session.Session, jr *journal.Journal, mux *http.ServeMux, logger esllog.Logger) {
	addr := sess.RemoteAddr().String()
	logger.Infof("eslserver: accepted connection from %s", addr)

	m := monitor.New(sess, logger)
	mux.Handle("/monitor/"+addr, m)

	sub := sess.Subscribe(0)
	for msg := range sub.C() {
		jr.Record(msg)
	}

	logger.Infof("eslserver: connection from %s closed", addr)
}
