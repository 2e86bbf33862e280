package client

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"
)

// fakeServer accepts exactly one connection, sends an auth/request
// challenge, and hands every subsequent line the client writes to
// handle for a scripted response.
type fakeServer struct {
	ln net.Listener
}

func newFakeServer(t *testing.T, handle func(t *testing.T, conn net.Conn, line string)) *fakeServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	fs := &fakeServer{ln: ln}

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		conn.Write([]byte("Content-Type: auth/request\n\n"))

		r := bufio.NewReader(conn)
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimRight(line, "\r\n")
			if line == "" {
				continue
			}
			handle(t, conn, line)
		}
	}()

	return fs
}

func (fs *fakeServer) addr() string { return fs.ln.Addr().String() }
func (fs *fakeServer) close()       { fs.ln.Close() }

func TestClient_AuthSuccess(t *testing.T) {
	fs := newFakeServer(t, func(t *testing.T, conn net.Conn, line string) {
		if strings.HasPrefix(line, "auth ") {
			conn.Write([]byte("Content-Type: command/reply\nReply-Text: +OK accepted\n\n"))
		}
	})
	defer fs.close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := New(ctx, fs.addr(), "ClueCon", nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer c.Close()
}

func TestClient_AuthFailure(t *testing.T) {
	fs := newFakeServer(t, func(t *testing.T, conn net.Conn, line string) {
		if strings.HasPrefix(line, "auth ") {
			conn.Write([]byte("Content-Type: command/reply\nReply-Text: -ERR invalid\n\n"))
		}
	})
	defer fs.close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := New(ctx, fs.addr(), "wrong", nil)
	if err != ErrAuthFailed {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}

func TestClient_AuthFailureOnNonExactReplyText(t *testing.T) {
	fs := newFakeServer(t, func(t *testing.T, conn net.Conn, line string) {
		if strings.HasPrefix(line, "auth ") {
			conn.Write([]byte("Content-Type: command/reply\nReply-Text: +OK accepted, but stale\n\n"))
		}
	})
	defer fs.close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := New(ctx, fs.addr(), "ClueCon", nil)
	if err != ErrAuthFailed {
		t.Fatalf("expected ErrAuthFailed for a reply text that merely contains +OK, got %v", err)
	}
}

func TestClient_Api(t *testing.T) {
	fs := newFakeServer(t, func(t *testing.T, conn net.Conn, line string) {
		switch {
		case strings.HasPrefix(line, "auth "):
			conn.Write([]byte("Content-Type: command/reply\nReply-Text: +OK accepted\n\n"))
		case strings.HasPrefix(line, "api status"):
			body := "UP 0 years, 0 days"
			conn.Write([]byte("Content-Type: api/response\nContent-Length: " + strconv.Itoa(len(body)) + "\n\n" + body))
		}
	})
	defer fs.close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := New(ctx, fs.addr(), "ClueCon", nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer c.Close()

	reply, err := c.Api(ctx, "status")
	if err != nil {
		t.Fatalf("Api returned error: %v", err)
	}
	if reply.Body != "UP 0 years, 0 days" {
		t.Fatalf("unexpected api/response body: %q", reply.Body)
	}
}

func TestClient_BigApiCorrelatesByJobUUID(t *testing.T) {
	var jobUUID string

	fs := newFakeServer(t, func(t *testing.T, conn net.Conn, line string) {
		switch {
		case strings.HasPrefix(line, "auth "):
			conn.Write([]byte("Content-Type: command/reply\nReply-Text: +OK accepted\n\n"))
		case strings.HasPrefix(line, "bigapi "):
			conn.Write([]byte("Content-Type: command/reply\nReply-Text: +OK Job-UUID: will-be-replaced\n\n"))
		case strings.HasPrefix(line, "Job-UUID: "):
			jobUUID = strings.TrimPrefix(line, "Job-UUID: ")
			body := `{"Event-Name":"BACKGROUND_JOB","Job-UUID":"` + jobUUID + `","_body":"+OK"}`
			go func() {
				time.Sleep(20 * time.Millisecond)
				conn.Write([]byte("Content-Type: text/event-json\nContent-Length: " + strconv.Itoa(len(body)) + "\n\n" + body))
			}()
		}
	})
	defer fs.close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := New(ctx, fs.addr(), "ClueCon", nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer c.Close()

	job, err := c.BigApi(ctx, "originate sofia/foo 1000")
	if err != nil {
		t.Fatalf("BigApi returned error: %v", err)
	}
	if job.JobUUID() == "" || job.JobUUID() != jobUUID {
		t.Fatalf("expected job event correlated to %q, got %q", jobUUID, job.JobUUID())
	}
}

func TestClient_SendMsgReturnsWithoutWaitingForAck(t *testing.T) {
	ackDelay := 200 * time.Millisecond

	fs := newFakeServer(t, func(t *testing.T, conn net.Conn, line string) {
		switch {
		case strings.HasPrefix(line, "auth "):
			conn.Write([]byte("Content-Type: command/reply\nReply-Text: +OK accepted\n\n"))
		case strings.HasPrefix(line, "sendmsg "):
			go func() {
				time.Sleep(ackDelay)
				conn.Write([]byte("Content-Type: command/reply\nReply-Text: +OK\n\n"))
			}()
		case strings.HasPrefix(line, "api status"):
			body := "UP 0 years, 0 days"
			conn.Write([]byte("Content-Type: api/response\nContent-Length: " + strconv.Itoa(len(body)) + "\n\n" + body))
		}
	})
	defer fs.close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := New(ctx, fs.addr(), "ClueCon", nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer c.Close()

	start := time.Now()
	if err := c.SendMsg(ctx, "some-uuid", "playback", "/tmp/foo.wav"); err != nil {
		t.Fatalf("SendMsg returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed >= ackDelay {
		t.Fatalf("SendMsg blocked for %v waiting on the command/reply ack, expected immediate return", elapsed)
	}

	// The ack arrives on the wire ackDelay after SendMsg returns. A
	// later Api call issued well after that must still receive its own
	// reply, not the leftover sendmsg ack.
	time.Sleep(ackDelay + 50*time.Millisecond)

	reply, err := c.Api(ctx, "status")
	if err != nil {
		t.Fatalf("Api returned error: %v", err)
	}
	if reply.Body != "UP 0 years, 0 days" {
		t.Fatalf("unexpected api/response body: %q", reply.Body)
	}
}

