package session

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/jg-phare/esl/pkg/frame"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func mustRecv(t *testing.T, sub *Subscription, timeout time.Duration) *frame.Message {
	t.Helper()
	select {
	case msg, ok := <-sub.C():
		if !ok {
			t.Fatal("subscription channel closed before delivering a message")
		}
		return msg
	case <-time.After(timeout):
		t.Fatal("timed out waiting for inbound message")
		return nil
	}
}

func TestSession_DeliversAuthRequest(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		server.Write([]byte("Content-Type: auth/request\n\n"))
	}()

	s := New(ctx, client, nil)
	sub := s.Subscribe(0)

	got := mustRecv(t, sub, time.Second)
	if got.Header("Content-Type") != "auth/request" {
		t.Fatalf("expected auth/request, got content-type %q", got.Header("Content-Type"))
	}

	cancel()
	s.Wait()
}

func TestSession_SendAppliesDoubleNewlineFraming(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(ctx, client, nil)

	readDone := make(chan string, 1)
	go func() {
		buf := make([]byte, 64)
		n, _ := server.Read(buf)
		readDone <- string(buf[:n])
	}()

	if err := s.Send("auth ClueCon"); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	select {
	case got := <-readDone:
		if got != "auth ClueCon\n\n" {
			t.Fatalf("expected framed payload %q, got %q", "auth ClueCon\n\n", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for written payload")
	}

	cancel()
	s.Wait()
}

func TestSession_IsClosedLatchesOnConnectionDrop(t *testing.T) {
	server, client := net.Pipe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(ctx, client, nil)
	if s.IsClosed() {
		t.Fatal("session reports closed before any failure")
	}

	server.Close()

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for session to latch closed")
	}

	if !s.IsClosed() {
		t.Fatal("IsClosed did not latch true after connection drop")
	}

	if err := s.Send("bye"); err != ErrClosed {
		t.Fatalf("expected ErrClosed from Send on a closed session, got %v", err)
	}

	s.Wait()
}

func TestSession_ExternalCancelUnblocksBothLoops(t *testing.T) {
	_, client := net.Pipe()

	ctx, cancel := context.WithCancel(context.Background())
	s := New(ctx, client, nil)

	cancel()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reader/writer tasks did not exit after context cancellation")
	}
}

// recordingLogger captures which level each call landed at, so tests
// can assert on log severity rather than just log content.
type recordingLogger struct {
	mu     sync.Mutex
	errorf []string
	infof  []string
}

func (l *recordingLogger) Debugf(string, ...any) {}
func (l *recordingLogger) Warnf(string, ...any)  {}
func (l *recordingLogger) Infof(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infof = append(l.infof, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Errorf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorf = append(l.errorf, fmt.Sprintf(format, args...))
}

func TestSession_DisconnectNoticeTeardownIsNotLoggedAsError(t *testing.T) {
	server, client := net.Pipe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := &recordingLogger{}
	s := New(ctx, client, logger)
	sub := s.Subscribe(0)

	go func() {
		server.Write([]byte("Content-Type: text/disconnect-notice\n\n"))
		server.Close()
	}()

	got := mustRecv(t, sub, time.Second)
	if got.Header("Content-Type") != "text/disconnect-notice" {
		t.Fatalf("expected text/disconnect-notice, got content-type %q", got.Header("Content-Type"))
	}

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for session to latch closed")
	}
	s.Wait()

	logger.mu.Lock()
	defer logger.mu.Unlock()
	if len(logger.errorf) != 0 {
		t.Fatalf("expected no Errorf calls after a disconnect-notice teardown, got %v", logger.errorf)
	}
	if len(logger.infof) == 0 {
		t.Fatal("expected the post-disconnect-notice close to be logged via Infof")
	}
}

func TestSession_SubscribeClosedOnTeardown(t *testing.T) {
	server, client := net.Pipe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(ctx, client, nil)
	sub := s.Subscribe(0)

	server.Close()

	select {
	case _, ok := <-sub.C():
		if ok {
			t.Fatal("expected subscription channel to be closed, got a message instead")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for subscription channel to close")
	}

	s.Wait()
}
