package wire

import (
	"bytes"
	"strconv"
)

type decodeStage int

const (
	awaitingSize decodeStage = iota
	awaitingPayload
)

// MaxBlockSize bounds a single block's declared size. Server values are
// far smaller in practice; a larger size prefix means the stream is
// corrupt or hostile, and accepting it would let a single size line
// commit the decoder to buffering without bound.
const MaxBlockSize = 64 << 20

// Decoder reassembles responses from a byte stream delivered in arbitrary
// fragments. It never blocks and never requires a minimum read size: a
// one-byte Feed is accumulated and retried on the next Next call.
//
// The zero value is ready to use. A Decoder is not safe for concurrent
// use; the session layer serializes access to it.
type Decoder struct {
	buf    []byte
	stage  decodeStage
	need   int      // payload size, valid in awaitingPayload
	blocks [][]byte // completed blocks of the in-progress response
}

// Feed appends raw transport bytes to the accumulation buffer.
func (d *Decoder) Feed(p []byte) {
	d.buf = append(d.buf, p...)
}

// Buffered returns the number of unconsumed bytes held by the decoder.
func (d *Decoder) Buffered() int {
	return len(d.buf)
}

// Reset discards all buffered input and in-progress state. Must be called
// when the underlying connection is replaced: decode state from one
// stream is meaningless on another.
func (d *Decoder) Reset() {
	d.buf = nil
	d.stage = awaitingSize
	d.need = 0
	d.blocks = nil
}

// Next runs the state machine over the buffered bytes.
//
// It returns (resp, nil) when a full response has been assembled,
// (nil, nil) when more input is needed, and (nil, *ProtocolError) on a
// framing violation. After a completed response, surplus bytes remain
// buffered for the next cycle. After an error the decoder must not be
// reused without Reset.
func (d *Decoder) Next() (*Response, error) {
	for {
		switch d.stage {
		case awaitingSize:
			nl := bytes.IndexByte(d.buf, '\n')
			if nl < 0 {
				return nil, nil
			}
			line := d.buf[:nl]
			if len(line) == 0 {
				// Terminating empty line: the response is complete.
				if len(d.blocks) == 0 {
					return nil, &ProtocolError{Message: "response terminator before status block"}
				}
				d.consume(nl + 1)
				resp := &Response{Blocks: d.blocks}
				d.blocks = nil
				return resp, nil
			}
			size, err := parseBlockSize(line)
			if err != nil {
				return nil, err
			}
			d.consume(nl + 1)
			d.need = size
			d.stage = awaitingPayload

		case awaitingPayload:
			// Wait for the whole block plus its terminator; nothing is
			// consumed until both are buffered.
			if len(d.buf) < d.need+1 {
				return nil, nil
			}
			if d.buf[d.need] != '\n' {
				return nil, &ProtocolError{Message: "block not newline-terminated"}
			}
			block := make([]byte, d.need)
			copy(block, d.buf)
			d.blocks = append(d.blocks, block)
			d.consume(d.need + 1)
			d.stage = awaitingSize
		}
	}
}

func (d *Decoder) consume(n int) {
	d.buf = d.buf[n:]
	if len(d.buf) == 0 {
		d.buf = nil
	}
}

// parseBlockSize parses a size line as a non-negative decimal integer.
// A single trailing \r is tolerated for hand-typed telnet sessions; the
// server itself never sends one.
func parseBlockSize(line []byte) (int, error) {
	line = bytes.TrimSuffix(line, []byte{'\r'})
	if len(line) == 0 {
		return 0, &ProtocolError{Message: "empty size line"}
	}
	for _, b := range line {
		if b < '0' || b > '9' {
			return 0, &ProtocolError{Message: "malformed size line " + strconv.Quote(string(line))}
		}
	}
	size, err := strconv.Atoi(string(line))
	if err != nil {
		return 0, &ProtocolError{Message: "malformed size line", Err: err}
	}
	if size > MaxBlockSize {
		return 0, &ProtocolError{Message: "block size " + strconv.Quote(string(line)) + " exceeds limit"}
	}
	return size, nil
}
