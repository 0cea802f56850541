package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	PG    PGConfig
	Redis RedisConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // default 6
	PingTimeout    time.Duration // default 5s
}

// RedisConfig configures redis connectivity, URL in redis:// or rediss:// form
type RedisConfig struct {
	Enabled     bool
	URL         string
	PingTimeout time.Duration // default 5s
}

const (
	defaultConnectRetries = 6
	defaultPingTimeout    = 5 * time.Second
)

func (c PGConfig) retries() int {
	if c.ConnectRetries <= 0 {
		return defaultConnectRetries
	}
	return c.ConnectRetries
}

func pingTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultPingTimeout
	}
	return d
}
