// Package monitor fans a session's inbound event broadcast out over
// WebSocket, so a browser-based dashboard can watch ESL traffic live
// (SPEC_FULL.md §2). It is not part of spec.md's protocol surface —
// it is the one domain component this module adds purely to give
// nhooyr.io/websocket a concrete home.
package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"nhooyr.io/websocket"

	"github.com/jg-phare/esl/pkg/esllog"
	"github.com/jg-phare/esl/pkg/frame"
	"github.com/jg-phare/esl/pkg/session"
)

// subscriberBuffer bounds how many not-yet-sent frames one connected
// browser may queue before it is treated as lagging (spec.md §5's
// drop-oldest semantics apply the same way here as to any other
// subscriber of a session's broadcast).
const subscriberBuffer = 128

// wireMessage is the JSON shape pushed to every connected WebSocket
// client for each inbound frame.
type wireMessage struct {
	ContentType string         `json:"content_type,omitempty"`
	EventName   string         `json:"event_name,omitempty"`
	Headers     map[string]any `json:"headers,omitempty"`
	EventData   map[string]any `json:"event_data,omitempty"`
}

// Monitor is an http.Handler that upgrades each request to a
// WebSocket and streams sess's inbound broadcast to it until the
// client disconnects or sess closes.
type Monitor struct {
	sess   *session.Session
	logger esllog.Logger

	clients atomic.Int64
}

// New wraps sess for WebSocket fan-out. Register the returned Monitor
// on an *http.ServeMux at whatever path the dashboard should connect
// to.
func New(sess *session.Session, logger esllog.Logger) *Monitor {
	return &Monitor{sess: sess, logger: esllog.OrNop(logger)}
}

// ConnectedClients reports how many WebSocket clients are currently
// attached.
func (m *Monitor) ConnectedClients() int64 { return m.clients.Load() }

// ServeHTTP implements http.Handler.
func (m *Monitor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		m.logger.Warnf("monitor: websocket accept failed: %v", err)
		return
	}
	defer conn.CloseNow()

	m.clients.Add(1)
	defer m.clients.Add(-1)

	ctx := r.Context()
	sub := m.sess.Subscribe(subscriberBuffer)
	defer sub.Unsubscribe()

	for {
		select {
		case msg, ok := <-sub.C():
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "session closed")
				return
			}
			if err := m.send(ctx, conn, msg); err != nil {
				m.logger.Warnf("monitor: write failed, dropping client: %v", err)
				return
			}
		case <-ctx.Done():
			conn.Close(websocket.StatusGoingAway, "client context canceled")
			return
		case <-m.sess.Done():
			conn.Close(websocket.StatusNormalClosure, "session closed")
			return
		}
	}
}

func (m *Monitor) send(ctx context.Context, conn *websocket.Conn, msg *frame.Message) error {
	headers := make(map[string]any, msg.Headers.Len())
	for _, k := range msg.Headers.Keys() {
		headers[k] = msg.Headers.Get(k)
	}
	wm := wireMessage{
		ContentType: msg.Header("Content-Type"),
		EventName:   msg.EventName().String(),
		Headers:     headers,
		EventData:   msg.EventData,
	}
	data, err := json.Marshal(wm)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}
