package client

import "errors"

// ErrAuthFailed is returned by New/Reconnect when the server rejects
// the configured password (spec.md §4.4 "auth request/response flow").
var ErrAuthFailed = errors.New("client: authentication failed")

// ErrNotConnected is returned by any command method called after the
// underlying session has closed.
var ErrNotConnected = errors.New("client: not connected")

// ErrUnexpectedReply is returned by New/Reconnect when the first reply
// the server sends is not the auth/request challenge.
var ErrUnexpectedReply = errors.New("client: unexpected reply content-type")
