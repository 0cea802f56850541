// Package mail delivers plain text notifications through an SMTP relay, or to the
// operational log when no relay is configured
package mail

import (
	"context"
	"strings"
	"time"

	"devsolutions/internal/platform/config"
)

// Message is one outbound plain text email. Empty From and To fall back to the transport config
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

// Transport sends messages
type Transport interface {
	Send(ctx context.Context, m Message) error
	// Name labels the channel in logs and delivery results
	Name() string
}

// DefaultRecipient receives contact notifications unless SMTP_TO overrides it
const DefaultRecipient = "hello@devsolutions.com"

// Config holds the SMTP relay settings
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
	Timeout  time.Duration
}

// ConfigFromEnv reads SMTP_* under c (e.g. CORE_API_SMTP_HOST)
func ConfigFromEnv(c config.Conf) Config {
	sc := c.Prefix("SMTP_")
	cfg := Config{
		Host:     sc.MayString("HOST", ""),
		Port:     sc.MayInt("PORT", 587),
		Username: sc.MayString("USERNAME", ""),
		Password: sc.MayString("PASSWORD", ""),
		From:     sc.MayString("FROM", ""),
		To:       sc.MayString("TO", DefaultRecipient),
		Timeout:  sc.MayDuration("TIMEOUT", 10*time.Second),
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return cfg
}

// Configured reports whether enough is set to talk to a relay
func (c Config) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

// New returns the SMTP transport when cfg is configured and the log transport otherwise
func New(cfg Config) Transport {
	if cfg.Configured() {
		return NewSMTP(cfg)
	}
	return NewLog(cfg.To)
}

// headerSafe drops CR and LF so user supplied values cannot add headers
func headerSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, s)
}
