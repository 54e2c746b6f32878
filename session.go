package ssdb

import (
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/driftlab/ssdb/wire"
)

const readBufferSize = 4096

// Session owns one lazily-dialed connection to an SSDB server and the
// decode state that goes with it. All request/response cycles are
// serialized: the protocol is not pipelined, so a second request must
// never hit the wire before the first response has been fully decoded.
//
// A Session is safe for concurrent use. Concurrent callers are queued and
// served strictly one at a time.
type Session struct {
	addr   string
	config Config

	logger  *zap.Logger
	breaker *gobreaker.CircuitBreaker[*wire.Response]
	stats   *sessionStatsCollector

	// Guards conn, dec and readBuf. Held for the whole
	// encode/write/read-until-decoded cycle.
	mu      sync.Mutex
	conn    net.Conn
	dec     wire.Decoder
	readBuf []byte
}

// NewSession creates a session for the given server address. No I/O
// happens until the first command is issued.
func NewSession(addr string, config Config) *Session {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		addr:    addr,
		config:  config,
		logger:  logger,
		stats:   newSessionStatsCollector(),
		readBuf: make([]byte, readBufferSize),
	}

	if config.NewCircuitBreaker != nil {
		s.breaker = config.NewCircuitBreaker(addr)
	}

	return s
}

// Addr returns the server address the session dials.
func (s *Session) Addr() string {
	return s.addr
}

// IsConnected reports whether the session currently holds a connection.
func (s *Session) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// Close drops the cached connection. The session stays usable: the next
// command reconnects.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	s.dec.Reset()
	return err
}

// Do sends one command and returns its decoded response.
//
// The first Do on a disconnected session dials the server and, if a
// password is configured, performs the auth handshake. A "noauth" status
// is escalated to an AuthError. Do performs no retries and no implicit
// reconnect; after a transport or protocol failure the connection is
// dropped and the next call dials fresh.
func (s *Session) Do(ctx context.Context, cmd *wire.Command) (*wire.Response, error) {
	if cmd == nil || cmd.Verb == "" {
		return nil, ErrEmptyCommand
	}
	if s.breaker != nil {
		return s.breaker.Execute(func() (*wire.Response, error) {
			return s.do(ctx, cmd, false)
		})
	}
	return s.do(ctx, cmd, false)
}

// Send builds a command from a raw argument list (verb first) and sends
// it through Do. This is the escape hatch for verbs without a typed
// operation.
func (s *Session) Send(ctx context.Context, args ...[]byte) (*wire.Response, error) {
	return s.Do(ctx, wire.NewCommand(args...))
}

// Auth authenticates the connection with the given password. Unlike other
// commands it tolerates seeing the raw "noauth" status, so a bad
// credential surfaces as an AuthError rather than recursing.
func (s *Session) Auth(ctx context.Context, password string) error {
	resp, err := s.do(ctx, wire.NewAuthCommand(password), true)
	if err != nil {
		return err
	}
	if !resp.IsOK() {
		return &AuthError{Message: "credential rejected with status " + strconv.Quote(string(resp.Status()))}
	}
	return nil
}

func (s *Session) do(ctx context.Context, cmd *wire.Command, authAttempt bool) (*wire.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureConnected(ctx); err != nil {
		return nil, err
	}

	resp, err := s.roundTrip(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if resp.IsNotAuth() && !authAttempt {
		return nil, &AuthError{Message: "server requires authentication"}
	}

	return resp, nil
}

// ensureConnected dials and authenticates if the session is disconnected.
// Must be called with mu held. On any failure the session remains
// disconnected and the next call retries the whole handshake.
func (s *Session) ensureConnected(ctx context.Context) error {
	if s.conn != nil {
		return nil
	}

	conn, err := s.dialContext(ctx)
	if err != nil {
		return &ConnectError{Addr: s.addr, Err: err}
	}

	s.conn = conn
	s.dec.Reset()
	s.logger.Debug("ssdb: connected", zap.String("addr", s.addr))

	if s.config.Password == "" {
		return nil
	}

	resp, err := s.roundTrip(ctx, wire.NewAuthCommand(s.config.Password))
	if err != nil {
		// roundTrip already dropped the connection.
		return err
	}
	if !resp.IsOK() {
		s.invalidate("credential rejected")
		return &AuthError{Message: "credential rejected with status " + strconv.Quote(string(resp.Status()))}
	}

	s.logger.Debug("ssdb: authenticated", zap.String("addr", s.addr))
	return nil
}

func (s *Session) dialContext(ctx context.Context) (net.Conn, error) {
	if s.config.dial != nil {
		return s.config.dial(ctx)
	}

	dialer := s.config.Dialer
	if dialer == nil {
		dialer = &net.Dialer{}
	}

	dialCtx, cancel := context.WithTimeout(ctx, s.config.timeout())
	defer cancel()

	return dialer.DialContext(dialCtx, "tcp", s.addr)
}

// roundTrip writes one encoded command and reads until the decoder yields
// one full response. Must be called with mu held and s.conn non-nil.
// Every failure path drops the connection: after a short write, a timeout
// or a framing error the stream position is unknown and resuming decode
// state is unsafe.
func (s *Session) roundTrip(ctx context.Context, cmd *wire.Command) (*wire.Response, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(s.config.timeout())
	}
	if err := s.conn.SetDeadline(deadline); err != nil {
		s.invalidate("deadline rejected")
		return nil, &SendError{Op: "write", Err: err}
	}

	raw := cmd.Encode()
	n, err := s.conn.Write(raw)
	if err != nil {
		s.invalidate("write failed")
		return nil, &SendError{Op: "write", Err: err}
	}
	if n == 0 {
		s.invalidate("write sent nothing")
		return nil, &SendError{Op: "write", Err: errors.New("wrote zero bytes")}
	}

	for {
		resp, err := s.dec.Next()
		if err != nil {
			s.invalidate("protocol error")
			return nil, err
		}
		if resp != nil {
			return resp, nil
		}

		n, rerr := s.conn.Read(s.readBuf)
		if n > 0 {
			s.dec.Feed(s.readBuf[:n])
		}
		if rerr != nil {
			// The final bytes may have completed the response, or broken
			// the framing.
			resp, derr := s.dec.Next()
			if derr != nil {
				s.invalidate("protocol error")
				return nil, derr
			}
			if resp != nil {
				return resp, nil
			}
			s.invalidate("read failed")
			if rerr == io.EOF {
				rerr = io.ErrUnexpectedEOF
			}
			return nil, &SendError{Op: "read", Err: rerr}
		}
	}
}

// invalidate drops the cached connection and all decode state.
// Must be called with mu held.
func (s *Session) invalidate(reason string) {
	if s.conn == nil {
		return
	}
	s.logger.Warn("ssdb: dropping connection",
		zap.String("addr", s.addr),
		zap.String("reason", reason),
	)
	s.conn.Close()
	s.conn = nil
	s.dec.Reset()
}
