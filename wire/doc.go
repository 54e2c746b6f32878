// Package wire implements the SSDB wire protocol: command serialization
// and a streaming response decoder.
//
// This package serves as the foundation for the session layer in the root
// package. It performs no I/O and holds no connection state; the Decoder
// only buffers bytes between calls.
//
// # Framing
//
// Every unit on the wire, request or response, is a sequence of blocks
// followed by a bare empty line. Each block is its byte length as decimal
// ASCII digits, a newline, the raw bytes (binary-safe), and a trailing
// newline:
//
//	3\nset\n3\nfoo\n3\nbar\n\n
//
// A request is one or more blocks with the verb first. A response is one
// or more blocks with a short status token first ("ok", "not_found", ...)
// and optional payload blocks after it.
//
// # Encoding
//
//	cmd := wire.NewSetCommand("foo", []byte("bar"))
//	conn.Write(cmd.Encode())
//
// EncodeArgs frames an arbitrary argument list and is the escape hatch for
// verbs without a typed constructor.
//
// # Decoding
//
// The Decoder is a resumable state machine fed with whatever bytes the
// transport delivered, in fragments of any size:
//
//	dec.Feed(buf[:n])
//	resp, err := dec.Next()
//	if err != nil {
//	    // ProtocolError: the connection must be closed
//	}
//	if resp == nil {
//	    // need more bytes, read again and Feed
//	}
//
// A completed response leaves any surplus bytes buffered for the next
// cycle. Next never blocks and never discards unconsumed input.
//
// # Error Handling
//
// ProtocolError indicates a framing violation (malformed size line,
// missing block terminator). Decoder state is not recoverable after a
// ProtocolError; callers must discard the connection and Reset the
// Decoder before reusing it.
package wire
