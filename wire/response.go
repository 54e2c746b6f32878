package wire

// Response represents one fully decoded server response: an ordered
// sequence of blocks where the first block is the status token and the
// remaining blocks are the payload.
//
// A Response always has at least one block. Responses are immutable once
// returned by the decoder.
type Response struct {
	Blocks [][]byte
}

// Status returns the status token (first block).
func (r *Response) Status() StatusType {
	return StatusType(r.Blocks[0])
}

// Payload returns the blocks after the status. May be empty: status-only
// responses are the norm for commands without a return value.
func (r *Response) Payload() [][]byte {
	return r.Blocks[1:]
}

// Value returns the first payload block, or nil if the response carries
// no payload.
func (r *Response) Value() []byte {
	if len(r.Blocks) < 2 {
		return nil
	}
	return r.Blocks[1]
}

// HasValue returns true if the response includes at least one payload block.
func (r *Response) HasValue() bool {
	return len(r.Blocks) > 1
}

// IsOK returns true if the response indicates a successful operation.
func (r *Response) IsOK() bool {
	return r.Status() == StatusOK
}

// IsNotFound returns true if the response indicates a missing key.
// This is not an error for read operations.
func (r *Response) IsNotFound() bool {
	return r.Status() == StatusNotFound
}

// IsNotAuth returns true if the server rejected the command because the
// connection has not been authenticated.
func (r *Response) IsNotAuth() bool {
	return r.Status() == StatusNotAuth
}
