package mail

import (
	"context"
	"strings"

	"devsolutions/internal/platform/logger"
)

// Log writes messages to the operational log instead of sending them
type Log struct {
	to string
}

// NewLog returns a log transport; to is reported as the recipient when a message has none
func NewLog(to string) *Log {
	if to == "" {
		to = DefaultRecipient
	}
	return &Log{to: to}
}

// Name implements Transport
func (*Log) Name() string { return "log" }

// Send implements Transport
func (l *Log) Send(ctx context.Context, m Message) error {
	to := m.To
	if len(to) == 0 {
		to = []string{l.to}
	}
	logger.C(ctx).Info().
		Str("transport", "log").
		Str("to", strings.Join(to, ",")).
		Str("reply_to", m.ReplyTo).
		Str("subject", m.Subject).
		Str("body", m.Body).
		Msg("email not sent; smtp not configured")
	return nil
}
