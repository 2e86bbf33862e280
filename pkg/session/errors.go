package session

import "errors"

// ErrClosed is returned by Send once the session's is_closed latch has
// fired (spec.md §4.3: "fails only if the outbound queue has been
// closed").
var ErrClosed = errors.New("session: closed")
