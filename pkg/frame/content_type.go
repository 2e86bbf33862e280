package frame

// ContentType is the closed set of Content-Type header values ESL
// emits (spec.md §3). Any other value is a parse error.
type ContentType int

const (
	ContentTypeUnknown ContentType = iota
	ContentTypeEventJSON
	ContentTypeEventPlain
	ContentTypeDisconnectNotice
	ContentTypeCommandReply
	ContentTypeAPIResponse
	ContentTypeAuthRequest
)

var contentTypeWire = map[ContentType]string{
	ContentTypeEventJSON:        "text/event-json",
	ContentTypeEventPlain:       "text/event-plain",
	ContentTypeDisconnectNotice: "text/disconnect-notice",
	ContentTypeCommandReply:     "command/reply",
	ContentTypeAPIResponse:      "api/response",
	ContentTypeAuthRequest:      "auth/request",
}

var contentTypeFromWire = func() map[string]ContentType {
	m := make(map[string]ContentType, len(contentTypeWire))
	for ct, s := range contentTypeWire {
		m[s] = ct
	}
	return m
}()

// String returns the wire form, or "" for ContentTypeUnknown.
func (c ContentType) String() string {
	return contentTypeWire[c]
}

// parseContentType maps a wire value to its ContentType, returning
// ContentTypeUnknown (and a *ContentTypeError) for anything outside the
// closed set.
func parseContentType(s string) (ContentType, error) {
	if ct, ok := contentTypeFromWire[s]; ok {
		return ct, nil
	}
	return ContentTypeUnknown, &ContentTypeError{Value: s}
}
