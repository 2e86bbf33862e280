package frame

import (
	"encoding/json"
	"strconv"
)

// Message is the in-memory representation of one ESL frame: an ordered
// header map plus an optional decoded event payload (spec.md §3).
type Message struct {
	Headers   *Headers
	EventData map[string]any

	// Body holds the (URL-decoded, where applicable) raw body text for
	// content-types that don't decode into structured EventData —
	// api/response and command/reply bodies in particular. Not part of
	// spec.md's data model directly, but required to implement §4.4's
	// GetUUID ("parse body of reply as the UUID").
	Body string
}

// NewMessage builds a Message from an existing header set and event
// data (spec.md §4.2 `new`). headers may be nil, in which case an
// empty Headers is used.
func NewMessage(headers *Headers, eventData map[string]any) *Message {
	if headers == nil {
		headers = NewHeaders()
	}
	return &Message{Headers: headers, EventData: eventData}
}

// Header returns headers.Get(k), defaulting to "" on a miss (spec.md
// §4.2).
func (m *Message) Header(k string) string {
	if m == nil {
		return ""
	}
	return m.Headers.Get(k)
}

// UUID returns EventData["Unique-ID"] as a string, or "" if absent
// (spec.md §4.2 `get_uuid`).
func (m *Message) UUID() string {
	if m == nil || m.EventData == nil {
		return ""
	}
	return stringify(m.EventData["Unique-ID"])
}

// EventName decodes EventData["Event-Name"] into the Event catalog, or
// EventNone if this message carries no event body (command/reply,
// api/response, disconnect-notice, auth/request all return EventNone).
func (m *Message) EventName() Event {
	if m == nil || m.EventData == nil {
		return EventNone
	}
	return EventFromString(stringify(m.EventData["Event-Name"]))
}

// JobUUID returns EventData["Job-UUID"], the correlation id a
// BACKGROUND_JOB event carries back to the bigapi call that spawned it.
func (m *Message) JobUUID() string {
	if m == nil || m.EventData == nil {
		return ""
	}
	return stringify(m.EventData["Job-UUID"])
}

// ReplyText returns the message's Reply-Text — the canonical location
// -ERR/+OK markers are surfaced at (spec.md §6, §7). Content-types that
// synthesize event_data (text/event-json, text/event-plain,
// api/response error bodies) carry it there; command/reply and
// successful api/response frames carry it as a plain header instead,
// so EventData is checked first and the header is the fallback.
func (m *Message) ReplyText() string {
	if m == nil {
		return ""
	}
	if m.EventData != nil {
		if v, ok := m.EventData["Reply-Text"]; ok {
			return stringify(v)
		}
	}
	return m.Headers.Get("Reply-Text")
}

// IsError reports whether the message's Reply-Text carries a "-ERR"
// marker. Parse folds a "-ERR" body into Reply-Text for event and
// api/response frames; a command/reply body is not folded, so only its
// Reply-Text header is checked.
func (m *Message) IsError() bool {
	return containsErrMarker(m.ReplyText())
}

// String serializes the message as "Field: Value\n" header lines
// followed by the JSON-encoded event data and a trailing newline
// (spec.md §4.2). Round-tripping through Parse is only required to be
// semantically, not byte-, identical.
func (m *Message) String() string {
	out := m.Headers.String()
	if m.EventData != nil {
		if b, err := json.Marshal(m.EventData); err == nil {
			out += string(b) + "\n"
		}
	}
	return out
}

// stringify renders a decoded JSON-like value (string | number | bool |
// null) the way spec.md §3's event_data fallback expects — never
// arrays/objects, which callers of Header/UUID/ReplyText don't need.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return ""
	}
}
