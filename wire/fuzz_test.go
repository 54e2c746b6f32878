package wire

import (
	"bytes"
	"testing"
)

// FuzzDecoder fuzzes the streaming decoder to find crashes and panics.
// Run with: go test -fuzz='^FuzzDecoder$' -fuzztime=60s ./wire
func FuzzDecoder(f *testing.F) {
	// Valid responses
	f.Add([]byte("2\nok\n\n"))
	f.Add([]byte("2\nok\n3\nbaz\n\n"))
	f.Add([]byte("9\nnot_found\n\n"))
	f.Add([]byte("6\nnoauth\n\n"))
	f.Add([]byte("2\nok\n0\n\n\n"))
	f.Add([]byte("2\nok\n5\na\nb\x00c\n\n"))
	f.Add([]byte("2\nok\n\n2\nok\n\n")) // two pipelined responses

	// Truncated and malformed input
	f.Add([]byte(""))
	f.Add([]byte("2\n"))
	f.Add([]byte("2\nok"))
	f.Add([]byte("\n"))
	f.Add([]byte("abc\nok\n\n"))
	f.Add([]byte("-1\n"))
	f.Add([]byte("999999\nshort\n\n"))
	f.Add([]byte("2\nokX\n"))
	f.Add([]byte("2\r\nok\r\n\r\n"))
	f.Add([]byte("9223372036854775807\n"))
	f.Add([]byte("99999999999999999999\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		var dec Decoder
		dec.Feed(data)

		for {
			resp, err := dec.Next()
			if err != nil {
				// After a framing error the decoder is done.
				return
			}
			if resp == nil {
				// Needs more input; there is none.
				return
			}
			if len(resp.Blocks) == 0 {
				t.Fatal("decoder returned a response with zero blocks")
			}
		}
	})
}

// FuzzRoundTrip checks that any encoded block sequence decodes back
// unchanged, regardless of how the bytes are chunked.
func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("ok"), []byte("baz"), 1)
	f.Add([]byte(""), []byte("a\nb"), 3)
	f.Add([]byte("not_found"), []byte{0xff, 0x00, '\n'}, 7)

	f.Fuzz(func(t *testing.T, first, second []byte, chunk int) {
		raw := EncodeArgs(first, second)

		if chunk < 1 {
			chunk = 1
		}

		var dec Decoder
		var resp *Response
		for len(raw) > 0 {
			n := chunk
			if n > len(raw) {
				n = len(raw)
			}
			dec.Feed(raw[:n])
			raw = raw[n:]

			var err error
			resp, err = dec.Next()
			if err != nil {
				t.Fatalf("round trip failed to decode: %v", err)
			}
		}

		if resp == nil {
			t.Fatal("round trip did not complete")
		}
		if len(resp.Blocks) != 2 ||
			!bytes.Equal(resp.Blocks[0], first) ||
			!bytes.Equal(resp.Blocks[1], second) {
			t.Fatalf("round trip mismatch: got %q", resp.Blocks)
		}
	})
}
