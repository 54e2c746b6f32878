package wire

// ProtocolError represents a framing violation in a server response.
// The decoder cannot resume after one: the size prefix that would anchor
// the next block can no longer be located in the stream.
//
// Common causes:
//   - Size line is not a non-negative decimal integer
//   - Block data not followed by a newline
//   - Response terminator before any status block
//
// Connection handling: CLOSE the connection and Reset the decoder.
type ProtocolError struct {
	Message string
	Err     error // Underlying error, if any
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return "ssdb: protocol error: " + e.Message + ": " + e.Err.Error()
	}
	return "ssdb: protocol error: " + e.Message
}

// Unwrap returns the underlying error for error chain inspection
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// ShouldCloseConnection returns true - framing errors corrupt decode state
func (e *ProtocolError) ShouldCloseConnection() bool {
	return true
}
