package frame

import "strings"

// Headers is an insertion-ordered field->value mapping. ESL headers are
// case-sensitive on the wire and duplicates last-wins within one
// message (spec.md §3/§4.1), but re-serialization should be
// deterministic, which a bare map cannot guarantee.
type Headers struct {
	order []string
	vals  map[string]string
}

// NewHeaders returns an empty Headers ready for use.
func NewHeaders() *Headers {
	return &Headers{vals: make(map[string]string)}
}

// Set inserts or overwrites a field. Overwriting an existing field
// keeps its original position in iteration order (matches "last-wins"
// on value, not on position — re-parsing a serialized message is then
// stable).
func (h *Headers) Set(field, value string) {
	if h.vals == nil {
		h.vals = make(map[string]string)
	}
	if _, exists := h.vals[field]; !exists {
		h.order = append(h.order, field)
	}
	h.vals[field] = value
}

// Get returns the value for field, or "" if absent (spec.md §4.2:
// get_header on a miss returns the empty string, not an error).
func (h *Headers) Get(field string) string {
	if h == nil || h.vals == nil {
		return ""
	}
	return h.vals[field]
}

// Has reports whether field is present.
func (h *Headers) Has(field string) bool {
	if h == nil || h.vals == nil {
		return false
	}
	_, ok := h.vals[field]
	return ok
}

// Len reports the number of distinct fields.
func (h *Headers) Len() int {
	if h == nil {
		return 0
	}
	return len(h.order)
}

// Keys returns field names in insertion order.
func (h *Headers) Keys() []string {
	if h == nil {
		return nil
	}
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// Equal reports whether h and o hold the same field/value pairs,
// irrespective of order (spec.md §8 round-trip invariant only requires
// "same header set").
func (h *Headers) Equal(o *Headers) bool {
	if h.Len() != o.Len() {
		return false
	}
	for _, k := range h.Keys() {
		if h.Get(k) != o.Get(k) {
			return false
		}
	}
	return true
}

// String renders headers as "Field: Value\n" lines in insertion order.
func (h *Headers) String() string {
	var b strings.Builder
	for _, k := range h.Keys() {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(h.Get(k))
		b.WriteByte('\n')
	}
	return b.String()
}

// parseHeaderLine splits "field : value" on the first colon, trimming
// whitespace from both sides. Lines without a colon return ok=false.
func parseHeaderLine(line string) (field, value string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}
