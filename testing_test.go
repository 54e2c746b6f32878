package ssdb

import (
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/driftlab/ssdb/wire"
)

func createListener(t testing.TB, handler func(conn net.Conn)) string {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to start test server: %v", err)
	}

	t.Cleanup(func() {
		listener.Close()
	})

	// Accept connections in background
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}

			go func(c net.Conn) {
				defer c.Close()

				if handler != nil {
					handler(c)
				}
			}(conn)
		}
	}()

	return listener.Addr().String()
}

// frame serializes blocks in wire format, terminator included.
func frame(blocks ...string) string {
	var b strings.Builder
	for _, blk := range blocks {
		fmt.Fprintf(&b, "%d\n%s\n", len(blk), blk)
	}
	b.WriteString("\n")
	return b.String()
}

// requestReader returns a function that reads one full request from conn.
// Requests use the same block framing as responses, so the decoder serves
// both ends.
func requestReader(conn net.Conn) func() ([][]byte, error) {
	dec := &wire.Decoder{}
	buf := make([]byte, 512)

	return func() ([][]byte, error) {
		for {
			req, err := dec.Next()
			if err != nil {
				return nil, err
			}
			if req != nil {
				return req.Blocks, nil
			}

			n, rerr := conn.Read(buf)
			if n > 0 {
				dec.Feed(buf[:n])
			}
			if rerr != nil {
				return nil, rerr
			}
		}
	}
}

// scriptedResponder answers every request on the connection with the same
// framed response.
func scriptedResponder(response string) func(conn net.Conn) {
	return func(conn net.Conn) {
		next := requestReader(conn)
		for {
			if _, err := next(); err != nil {
				return
			}
			if _, err := conn.Write([]byte(response)); err != nil {
				return
			}
		}
	}
}

// kvResponder implements enough of the store to exercise the typed
// operations: set/get/del plus a hash namespace and counters.
func kvResponder(password string) func(conn net.Conn) {
	return func(conn net.Conn) {
		data := map[string]string{}
		authed := password == ""
		next := requestReader(conn)

		for {
			req, err := next()
			if err != nil {
				return
			}

			verb := string(req[0])
			args := req[1:]

			var response string
			switch {
			case verb == "auth":
				if len(args) == 1 && string(args[0]) == password {
					authed = true
					response = frame("ok", "1")
				} else {
					response = frame("error")
				}
			case !authed:
				response = frame("noauth")
			case verb == "set" && len(args) == 2:
				data[string(args[0])] = string(args[1])
				response = frame("ok", "1")
			case verb == "get" && len(args) == 1:
				if v, ok := data[string(args[0])]; ok {
					response = frame("ok", v)
				} else {
					response = frame("not_found")
				}
			case verb == "del" && len(args) == 1:
				delete(data, string(args[0]))
				response = frame("ok", "1")
			case verb == "hset" && len(args) == 3:
				data[string(args[0])+"\x00"+string(args[1])] = string(args[2])
				response = frame("ok", "1")
			case verb == "hget" && len(args) == 2:
				if v, ok := data[string(args[0])+"\x00"+string(args[1])]; ok {
					response = frame("ok", v)
				} else {
					response = frame("not_found")
				}
			case verb == "hdel" && len(args) == 2:
				delete(data, string(args[0])+"\x00"+string(args[1]))
				response = frame("ok", "1")
			case verb == "incr" && len(args) == 2:
				cur := int64(0)
				fmt.Sscanf(data[string(args[0])], "%d", &cur)
				var delta int64
				fmt.Sscanf(string(args[1]), "%d", &delta)
				cur += delta
				data[string(args[0])] = fmt.Sprintf("%d", cur)
				response = frame("ok", fmt.Sprintf("%d", cur))
			case verb == "info":
				response = frame("ok", "ssdb-server", "version", "1.9.9", "links", "1")
			default:
				response = frame("client_error")
			}

			if _, err := conn.Write([]byte(response)); err != nil {
				return
			}
		}
	}
}

func testConfig() Config {
	return Config{Timeout: 2 * time.Second}
}
