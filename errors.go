package ssdb

import (
	"errors"
	"fmt"

	"github.com/driftlab/ssdb/wire"
)

// Error types for session operations.
// Together with wire.ProtocolError these cover every failure a caller can
// observe. Types that corrupt or lose the connection implement the
// ShouldCloseConnection contract; the session uses it to decide whether
// the cached connection survives the failed cycle.

// ErrEmptyCommand is returned when a command carries no verb. Encoding
// an empty verb would put a zero-length block on the wire, which the
// server cannot interpret as a command.
var ErrEmptyCommand = errors.New("ssdb: empty command")

// ConnectError indicates the transport could not be established:
// refused, unreachable, or the connect timeout expired.
//
// The session stays disconnected; the next call dials again.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("ssdb: connect to %s: %v", e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// AuthError indicates the credential was rejected during the lazy-connect
// handshake, or a non-auth command received a "noauth" status.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "ssdb: authentication failed: " + e.Message
}

// SendError indicates an I/O failure during a request/response cycle:
// the write failed or wrote nothing, the read failed, a deadline expired,
// or the stream ended mid-response.
//
// Connection handling: the session has already dropped the connection.
type SendError struct {
	Op  string // "write" or "read"
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("ssdb: %s failed: %v", e.Op, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// ShouldCloseConnection returns true. After an I/O failure the stream
// position is unknown.
func (e *SendError) ShouldCloseConnection() bool {
	return true
}

// CommandError indicates a command-specific postcondition failed: the
// server answered, but not with what the operation requires (e.g. set did
// not return "ok", incr payload was not numeric). It carries the raw
// response so failures can be diagnosed without capturing wire bytes.
type CommandError struct {
	Verb     wire.Verb
	Key      string
	Response *wire.Response
	Message  string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("ssdb: %s %q: %s", e.Verb, e.Key, e.Message)
	if e.Response != nil {
		msg += fmt.Sprintf(" (status %q)", e.Response.Status())
	}
	return msg
}

// ShouldCloseConnection reports whether an error invalidates the session's
// cached connection. Unknown error kinds are treated as fatal to the
// connection, since resuming a stream in an unknown state is unsafe.
func ShouldCloseConnection(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return false
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return false
	}

	return true
}
