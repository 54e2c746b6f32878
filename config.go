package ssdb

import (
	"context"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/driftlab/ssdb/wire"
)

// Config holds configuration for a Session.
// The zero value is usable: no credential, the default timeout, default
// dialer, no logging, no circuit breaker.
type Config struct {
	// Password is the credential sent as an auth command right after the
	// lazy connect. Empty means the server requires no authentication.
	Password string

	// Timeout bounds connect, write and read individually.
	// A context deadline on the call takes precedence. Zero means DefaultTimeout.
	Timeout time.Duration

	// Dialer is the net.Dialer used to create the connection.
	// If nil, the default net.Dialer is used.
	Dialer *net.Dialer

	// Logger receives connection lifecycle events (connect, auth,
	// invalidation). If nil, logging is disabled.
	Logger *zap.Logger

	// NewCircuitBreaker creates a circuit breaker for the session.
	// Called once when the session is created. If nil, no circuit breaker
	// is used. See NewCircuitBreakerConfig.
	NewCircuitBreaker func(addr string) *gobreaker.CircuitBreaker[*wire.Response]

	// for testing purposes only
	dial func(ctx context.Context) (net.Conn, error)
}

// DefaultTimeout is applied when Config.Timeout is zero and the call
// carries no context deadline.
const DefaultTimeout = 5 * time.Second

func (c *Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// EnvConfig is the environment-derived part of the session configuration,
// used for process wiring such as the CLI.
type EnvConfig struct {
	Addr     string        `env:"SSDB_ADDR, default=127.0.0.1:8888"`
	Password string        `env:"SSDB_PASSWORD"`
	Timeout  time.Duration `env:"SSDB_TIMEOUT, default=5s"`
}

// LoadConfig reads EnvConfig from the environment, seeding it from
// .env.local when present.
func LoadConfig(ctx context.Context) (*EnvConfig, error) {
	config := EnvConfig{}

	if err := godotenv.Load(".env.local"); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// SessionConfig converts the environment configuration into a Config.
func (c *EnvConfig) SessionConfig() Config {
	return Config{
		Password: c.Password,
		Timeout:  c.Timeout,
	}
}
