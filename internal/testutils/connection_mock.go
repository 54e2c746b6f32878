// Package testutils provides test doubles for the session layer.
package testutils

import (
	"bytes"
	"io"
	"net"
	"strings"
	"time"
)

// ConnectionMock is a mock implementation of net.Conn for testing.
// Reads are served from pre-configured response data; MaxChunk limits how
// many bytes a single Read returns, so tests can force the decoder to
// reassemble responses from fragments.
type ConnectionMock struct {
	readBuf  *bytes.Buffer
	writeBuf *bytes.Buffer
	closed   bool

	// MaxChunk caps bytes returned per Read. Zero means no cap.
	MaxChunk int

	// EOFOnLastRead makes the Read that drains the response data return
	// io.EOF together with the final bytes, as io.Reader permits.
	EOFOnLastRead bool
}

// NewConnectionMock creates a new mock connection with pre-configured
// response data.
func NewConnectionMock(responseData ...string) *ConnectionMock {
	readBuf := bytes.NewBufferString(strings.Join(responseData, ""))
	return &ConnectionMock{
		readBuf:  readBuf,
		writeBuf: &bytes.Buffer{},
	}
}

func (m *ConnectionMock) Read(b []byte) (n int, err error) {
	if m.closed {
		return 0, net.ErrClosed
	}
	if m.readBuf.Len() == 0 {
		return 0, io.EOF
	}
	if m.MaxChunk > 0 && len(b) > m.MaxChunk {
		b = b[:m.MaxChunk]
	}
	n, err = m.readBuf.Read(b)
	if err == nil && m.EOFOnLastRead && m.readBuf.Len() == 0 {
		err = io.EOF
	}
	return n, err
}

func (m *ConnectionMock) Write(b []byte) (n int, err error) {
	if m.closed {
		return 0, net.ErrClosed
	}
	return m.writeBuf.Write(b)
}

func (m *ConnectionMock) Close() error {
	m.closed = true
	return nil
}

func (m *ConnectionMock) IsClosed() bool {
	return m.closed
}

func (m *ConnectionMock) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}
}

func (m *ConnectionMock) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8888}
}

func (m *ConnectionMock) SetDeadline(t time.Time) error      { return nil }
func (m *ConnectionMock) SetReadDeadline(t time.Time) error  { return nil }
func (m *ConnectionMock) SetWriteDeadline(t time.Time) error { return nil }

// GetWrittenRequest returns the raw request bytes written to the mock
// connection.
func (m *ConnectionMock) GetWrittenRequest() string {
	return m.writeBuf.String()
}
