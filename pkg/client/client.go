// Package client implements the ESL outbound client facade (spec.md
// §4.4): dial a FreeSWITCH event socket, complete the auth handshake,
// and issue typed commands that wait for their correlated reply.
package client

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jg-phare/esl/pkg/esllog"
	"github.com/jg-phare/esl/pkg/frame"
	"github.com/jg-phare/esl/pkg/session"
)

// authTimeout bounds how long New waits for the auth/request challenge
// and the subsequent command/reply once the password is sent. spec.md
// names no number; the original rsesl source blocks indefinitely, but
// an idiomatic Go client should not hang forever on a dead dial.
const authTimeout = 10 * time.Second

// Client is a single outbound connection to a FreeSWITCH event socket
// (spec.md §4.4). It serializes synchronous commands (api, bigapi,
// filter, events) onto one in-flight exchange at a time, sends sendmsg
// fire-and-forget, and correlates bigapi jobs by Job-UUID independently
// of that serialization.
type Client struct {
	addr     string
	password string
	logger   esllog.Logger

	mu     sync.Mutex
	sess   *session.Session
	sub    *session.Subscription
	cancel context.CancelFunc

	sendMu  sync.Mutex
	replies chan *frame.Message
	jobs    *jobCorrelator
}

// New dials addr, completes the auth handshake with password, and
// returns a ready Client. parent governs the lifetime of the
// underlying session: canceling it tears the connection down the same
// way Close does.
func New(parent context.Context, addr, password string, logger esllog.Logger) (*Client, error) {
	c := &Client{
		addr:     addr,
		password: password,
		logger:   esllog.OrNop(logger),
	}
	if err := c.connect(parent); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) connect(parent context.Context) error {
	conn, err := net.DialTimeout("tcp", c.addr, authTimeout)
	if err != nil {
		return fmt.Errorf("client: dial %s: %w", c.addr, err)
	}

	ctx, cancel := context.WithCancel(parent)
	sess := session.New(ctx, conn, c.logger)
	sub := sess.Subscribe(0)

	c.mu.Lock()
	c.sess = sess
	c.sub = sub
	c.cancel = cancel
	c.mu.Unlock()

	c.replies = make(chan *frame.Message, 1)
	c.jobs = newJobCorrelator()
	go c.dispatch(sub)

	challenge, err := c.awaitReply(parent, authTimeout)
	if err != nil {
		cancel()
		return fmt.Errorf("client: waiting for auth/request: %w", err)
	}
	if challenge.Header("Content-Type") != "auth/request" {
		cancel()
		return fmt.Errorf("%w: expected auth/request, got %q", ErrUnexpectedReply, challenge.Header("Content-Type"))
	}

	if err := sess.Send("auth " + c.password); err != nil {
		cancel()
		return fmt.Errorf("client: sending auth: %w", err)
	}

	reply, err := c.awaitReply(parent, authTimeout)
	if err != nil {
		cancel()
		return fmt.Errorf("client: waiting for auth reply: %w", err)
	}
	if reply.ReplyText() != "+OK accepted" {
		cancel()
		return ErrAuthFailed
	}

	c.logger.Infof("client: authenticated against %s", c.addr)
	return nil
}

// dispatch routes every inbound message to either the synchronous
// reply channel (command/reply, api/response, auth/request) or the
// bigapi job correlator (BACKGROUND_JOB events), until the session
// closes its broadcast.
func (c *Client) dispatch(sub *session.Subscription) {
	for msg := range sub.C() {
		switch msg.Header("Content-Type") {
		case "command/reply", "api/response", "auth/request":
			c.replies <- msg
		default:
			if msg.EventName() == frame.EventBACKGROUND_JOB {
				if id := msg.JobUUID(); id != "" {
					c.jobs.resolve(id, msg)
				}
			}
		}
	}
}

func (c *Client) awaitReply(ctx context.Context, timeout time.Duration) (*frame.Message, error) {
	var timer *time.Timer
	var timeoutCh <-chan time.Time
	if timeout > 0 {
		timer = time.NewTimer(timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}
	select {
	case msg := <-c.replies:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.sess.Done():
		return nil, ErrNotConnected
	case <-timeoutCh:
		return nil, fmt.Errorf("client: timed out waiting for reply")
	}
}

// command sends one synchronous line (session.Send applies the
// trailing "\n\n" framing) and waits for its correlated reply,
// serialized against any other in-flight command on this connection.
func (c *Client) command(ctx context.Context, payload string) (*frame.Message, error) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.sess.IsClosed() {
		return nil, ErrNotConnected
	}
	if err := c.sess.Send(payload); err != nil {
		return nil, err
	}
	return c.awaitReply(ctx, 0)
}

// Api issues a synchronous "api <cmd>" command (spec.md §4.4).
func (c *Client) Api(ctx context.Context, cmd string) (*frame.Message, error) {
	return c.command(ctx, "api "+cmd)
}

// BigApi issues an asynchronous "bigapi <cmd>" command, correlates the
// resulting BACKGROUND_JOB event by Job-UUID, and returns that event
// once FreeSWITCH delivers it (spec.md §D Job-UUID correlation). If the
// submission itself fails (the immediate command/reply is an error),
// BigApi returns that reply directly without waiting on a job that will
// never arrive.
func (c *Client) BigApi(ctx context.Context, cmd string) (*frame.Message, error) {
	id := uuid.NewString()
	jobCh := c.jobs.register(id)

	submitted, err := c.command(ctx, "bigapi "+cmd+"\nJob-UUID: "+id)
	if err != nil {
		c.jobs.cancel(id)
		return nil, err
	}
	if submitted.IsError() {
		c.jobs.cancel(id)
		return submitted, nil
	}

	select {
	case job := <-jobCh:
		return job, nil
	case <-ctx.Done():
		c.jobs.cancel(id)
		return nil, ctx.Err()
	case <-c.sess.Done():
		c.jobs.cancel(id)
		return nil, ErrNotConnected
	}
}

// sendAckDrainTimeout bounds how long SendMsg waits in the background
// for the command/reply ack FreeSWITCH still sends for a sendmsg, so
// that ack never lingers in c.replies to be misdelivered to a later
// Api/BigApi caller.
const sendAckDrainTimeout = 5 * time.Second

// SendMsg issues a "sendmsg" execute-application command against
// channelUUID and returns as soon as the command is written, without
// waiting for its ack (spec.md §4.4: sendmsg is fire-and-forget). An
// empty arg omits the execute-app-arg line.
func (c *Client) SendMsg(ctx context.Context, channelUUID, app, arg string) error {
	payload := "sendmsg " + channelUUID + "\ncall-command: execute\nexecute-app-name: " + app
	if arg != "" {
		payload += "\nexecute-app-arg: " + arg
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.sess.IsClosed() {
		return ErrNotConnected
	}
	if err := c.sess.Send(payload); err != nil {
		return err
	}
	go c.awaitReply(context.Background(), sendAckDrainTimeout)
	return nil
}

// SetEventFormat subscribes to ALL events in the given wire format
// ("plain", "json" or "xml") via "events <format> ALL" (spec.md §4.4, §6).
func (c *Client) SetEventFormat(ctx context.Context, format frame.FormatType) (*frame.Message, error) {
	return c.command(ctx, "events "+format.String()+" ALL")
}

// EventFilter narrows the event stream to those carrying value in
// header, via "filter <header> <value>" (spec.md §4.4).
func (c *Client) EventFilter(ctx context.Context, header, value string) (*frame.Message, error) {
	return c.command(ctx, "filter "+header+" "+value)
}

// GetUUID issues "api create_uuid" and returns the freshly generated
// call UUID from the reply body (spec.md §4.4 GetUUID).
func (c *Client) GetUUID(ctx context.Context) (string, error) {
	reply, err := c.Api(ctx, "create_uuid")
	if err != nil {
		return "", err
	}
	if reply.IsError() {
		return "", fmt.Errorf("client: create_uuid failed: %s", reply.ReplyText())
	}
	return strings.TrimSpace(reply.Body), nil
}

// Events returns a new subscription to this connection's raw inbound
// broadcast (spec.md §5), for consumers that want events rather than
// command replies. buffer <= 0 uses the package default.
func (c *Client) Events(buffer int) *session.Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess.Subscribe(buffer)
}

// IsClosed reports whether the underlying session has latched closed.
func (c *Client) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess.IsClosed()
}

// Close tears down the underlying connection and waits for its reader
// and writer tasks to exit.
func (c *Client) Close() error {
	c.mu.Lock()
	cancel, sess := c.cancel, c.sess
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if sess != nil {
		sess.Wait()
	}
	return nil
}

// Reconnect closes the current connection, if any, and re-dials and
// re-authenticates against the same address (spec.md §D "synthesized
// reconnect()" — original_source/src/client.rs exposes no such
// operation, since OutboundSession there is always freshly accepted;
// this client adds it because an outbound dialer, unlike an inbound
// listener, is expected to recover from a dropped connection).
func (c *Client) Reconnect(parent context.Context) error {
	_ = c.Close()
	return c.connect(parent)
}
