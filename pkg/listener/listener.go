// Package listener implements the ESL inbound listener facade (spec.md
// §4.5): accept TCP connections from FreeSWITCH's "socket" dialplan
// application and hand each one off as a session.
package listener

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/jg-phare/esl/pkg/esllog"
	"github.com/jg-phare/esl/pkg/session"
)

// acceptQueueCapacity bounds how many accepted connections may wait
// for a handler before the accept loop blocks. spec.md §4.5 leaves the
// number open; the original rsesl source's mpsc backpressure is
// reproduced here the way grafana-k6's cmdCoordinator bounds its own
// gRPC accept loop by net.Listener backpressure rather than an
// explicit queue — a bounded channel is the Go-idiomatic equivalent.
const acceptQueueCapacity = 32

// Listener accepts inbound ESL connections on one TCP address and
// wraps each as a *session.Session (spec.md §4.5).
type Listener struct {
	ln     net.Listener
	logger esllog.Logger

	accepted chan *session.Session

	closeOnce sync.Once
	closed    chan struct{}
}

// New binds addr and returns a Listener ready to Accept or Run.
func New(addr string, logger esllog.Logger) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listener: listen %s: %w", addr, err)
	}
	l := &Listener{
		ln:       ln,
		logger:   esllog.OrNop(logger),
		accepted: make(chan *session.Session, acceptQueueCapacity),
		closed:   make(chan struct{}),
	}
	go l.acceptLoop()
	return l, nil
}

// Addr returns the bound local address, useful when addr was
// "host:0" and the OS chose the port.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

func (l *Listener) acceptLoop() {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			select {
			case <-l.closed:
				return
			default:
			}
			l.logger.Warnf("listener: accept failed, continuing: %v", err)
			continue
		}

		ctx, cancel := context.WithCancel(context.Background())
		sess := session.New(ctx, conn, l.logger)
		go func() {
			// Release the per-connection context once the session has
			// torn itself down, so a watchdog goroutine never outlives
			// its connection.
			<-sess.Done()
			cancel()
		}()

		select {
		case l.accepted <- sess:
		case <-l.closed:
			cancel()
			return
		}
	}
}

// Accept blocks until one inbound session is ready, ctx is canceled,
// or the listener is closed (spec.md §4.5 single-shot accept).
func (l *Listener) Accept(ctx context.Context) (*session.Session, error) {
	select {
	case sess, ok := <-l.accepted:
		if !ok {
			return nil, net.ErrClosed
		}
		return sess, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.closed:
		return nil, net.ErrClosed
	}
}

// Run accepts sessions in a loop and spawns handler for each one,
// until ctx is canceled or the listener is closed (spec.md §4.5 accept
// loop). Run returns the reason it stopped.
func (l *Listener) Run(ctx context.Context, handler func(*session.Session)) error {
	for {
		sess, err := l.Accept(ctx)
		if err != nil {
			return err
		}
		go handler(sess)
	}
}

// Close stops accepting new connections. Sessions already handed off
// via Accept/Run are unaffected; they run until their own connection
// closes or their context is canceled.
func (l *Listener) Close() error {
	l.closeOnce.Do(func() {
		close(l.closed)
		l.ln.Close()
	})
	return nil
}
