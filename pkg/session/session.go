// Package session implements the ESL session concurrency core
// (spec.md §4.3, §5): a full-duplex actor that owns one TCP connection,
// multiplexes an inbound broadcast with an outbound command queue, and
// coordinates shutdown between its reader and writer tasks.
package session

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jg-phare/esl/pkg/esllog"
	"github.com/jg-phare/esl/pkg/frame"
)

// outboundQueueCapacity bounds how many pending commands Send may
// enqueue before blocking the caller. spec.md names no number; the
// rsesl source this was distilled from uses 1000 (mpsc::channel::<String>(1000)).
const outboundQueueCapacity = 1000

// Session owns a single net.Conn and presents it as a full-duplex
// channel of framed ESL messages (spec.md §4.3). Construct with New;
// the reader and writer tasks are spawned immediately and run until
// the connection fails, a framing error is terminal, or ctx is
// canceled.
type Session struct {
	conn   net.Conn
	logger esllog.Logger

	in  *broadcaster
	out chan string

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool

	wg sync.WaitGroup
}

// New wraps conn as a Session and spawns its reader and writer tasks.
// ctx is the external shutdown signal (spec.md §4.3's "external
// shutdown subscriber"): canceling it causes both tasks to exit
// promptly at their next suspension point. A nil logger defaults to a
// no-op sink.
func New(ctx context.Context, conn net.Conn, logger esllog.Logger) *Session {
	s := &Session{
		conn:    conn,
		logger:  esllog.OrNop(logger),
		in:      newBroadcaster(),
		out:     make(chan string, outboundQueueCapacity),
		closeCh: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.readLoop(ctx)
	s.wg.Add(1)
	go s.writeLoop(ctx)

	// Unblocks whichever task is parked in a blocking socket read/write
	// once either the external shutdown fires or a peer task has
	// already latched internal close. Closing the conn is the only way
	// to interrupt a blocking net.Conn operation in Go.
	go func() {
		select {
		case <-ctx.Done():
		case <-s.closeCh:
		}
		_ = s.conn.Close()
	}()

	return s
}

// Send enqueues one logical command (spec.md §4.3): data is trimmed
// and "\n\n" is appended before it is handed to the writer task. Send
// fails only once the session has closed.
func (s *Session) Send(data string) error {
	select {
	case <-s.closeCh:
		return ErrClosed
	default:
	}
	payload := strings.TrimSpace(data) + "\n\n"
	select {
	case s.out <- payload:
		return nil
	case <-s.closeCh:
		return ErrClosed
	}
}

// Sender returns the outbound command channel for fan-in: Go channels
// are already safe for concurrent sends from multiple goroutines, so
// "cloning the producer half" (spec.md §4.3) is simply sharing this
// channel — no reference-counted handle is needed.
func (s *Session) Sender() chan<- string { return s.out }

// Subscribe registers a new inbound-message subscriber. buffer <= 0
// uses the package default. Messages published before Subscribe is
// called are not replayed.
func (s *Session) Subscribe(buffer int) *Subscription {
	return s.in.subscribe(buffer)
}

// RemoteAddr returns the underlying connection's remote address,
// useful for logging which peer a given Session belongs to.
func (s *Session) RemoteAddr() net.Addr { return s.conn.RemoteAddr() }

// IsClosed reports the latched closed state (spec.md §4.3). Once true
// it is never cleared; reconnection implies constructing a new
// Session.
func (s *Session) IsClosed() bool { return s.closed.Load() }

// Done returns a channel that is closed once the session has latched
// closed, for callers that want to select on session lifetime directly
// rather than polling IsClosed.
func (s *Session) Done() <-chan struct{} { return s.closeCh }

// Wait blocks until both the reader and writer tasks have exited.
func (s *Session) Wait() { s.wg.Wait() }

// triggerClose latches is_closed and fires the internal close signal
// exactly once, regardless of which task (or how many times) calls it
// (spec.md §4.3: "write-once (false → true)").
func (s *Session) triggerClose() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.closeCh)
		s.in.closeAll()
	})
}

// readLoop is the Session's reader task (spec.md §4.3).
func (s *Session) readLoop(ctx context.Context) {
	defer s.wg.Done()
	br := bufio.NewReader(s.conn)

	// expectingClose is set once a text/disconnect-notice has been
	// delivered (spec.md §8 scenario 6): FreeSWITCH closes the socket
	// right after sending one, so the terminal error on the very next
	// parse is the expected consequence of that notice, not a failure.
	expectingClose := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.closeCh:
			return
		default:
		}

		msg, err := frame.Parse(br)
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if frame.IsTerminal(err) {
				if expectingClose {
					s.logger.Infof("session: reader closing after disconnect-notice: %v", err)
				} else {
					s.logger.Errorf("session: reader closing: %v", err)
				}
				s.triggerClose()
				return
			}
			select {
			case <-s.closeCh:
				return
			default:
			}
			s.logger.Warnf("session: recoverable frame error, resyncing at next boundary: %v", err)
			continue
		}

		s.logger.Debugf("session: received message content-type=%q", msg.Header("Content-Type"))
		expectingClose = msg.Header("Content-Type") == frame.ContentTypeDisconnectNotice.String()
		s.in.publish(msg)
	}
}

// writeLoop is the Session's writer task (spec.md §4.3).
func (s *Session) writeLoop(ctx context.Context) {
	defer s.wg.Done()
	bw := bufio.NewWriter(s.conn)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.closeCh:
			return
		case payload := <-s.out:
			if _, err := bw.WriteString(payload); err != nil {
				s.logger.Warnf("session: write failed, continuing: %v", err)
				continue
			}
			if err := bw.Flush(); err != nil {
				s.logger.Errorf("session: flush failed, closing: %v", err)
				s.triggerClose()
				continue
			}
		}
	}
}
