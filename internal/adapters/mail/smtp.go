package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	perr "devsolutions/internal/platform/errors"

	"github.com/google/uuid"
)

// SMTP sends through a relay. Port 465 uses implicit TLS; any other port
// upgrades with STARTTLS when the server offers it
type SMTP struct {
	cfg  Config
	now  func() time.Time
	dial func(ctx context.Context, network, addr string) (net.Conn, error)
	tls  *tls.Config
}

// NewSMTP builds an SMTP transport from cfg
func NewSMTP(cfg Config) *SMTP {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	s := &SMTP{
		cfg: cfg,
		now: time.Now,
		tls: &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12},
	}
	d := &net.Dialer{Timeout: cfg.Timeout}
	if cfg.Port == 465 {
		td := &tls.Dialer{NetDialer: d, Config: s.tls}
		s.dial = td.DialContext
	} else {
		s.dial = d.DialContext
	}
	return s
}

// Name implements Transport
func (*SMTP) Name() string { return "smtp" }

// Send implements Transport
func (s *SMTP) Send(ctx context.Context, m Message) error {
	if m.From == "" {
		m.From = s.cfg.From
	}
	if len(m.To) == 0 {
		m.To = []string{s.cfg.To}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	conn, err := s.dial(ctx, "tcp", addr)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "smtp dial %s", addr)
	}
	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "smtp greeting")
	}
	defer c.Close()

	if s.cfg.Port != 465 {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(s.tls); err != nil {
				return perr.Wrap(err, perr.ErrorCodeUnavailable, "smtp starttls")
			}
		}
	}
	if s.cfg.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnavailable, "smtp auth")
		}
	}
	if err := c.Mail(m.From); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "smtp mail from")
	}
	for _, rcpt := range m.To {
		if err := c.Rcpt(rcpt); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnavailable, "smtp rcpt %s", rcpt)
		}
	}
	w, err := c.Data()
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "smtp data")
	}
	if _, err := w.Write(s.render(m)); err != nil {
		_ = w.Close()
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "smtp write")
	}
	if err := w.Close(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "smtp data close")
	}
	return c.Quit()
}

// render builds the RFC 5322 message with CRLF line endings
func (s *SMTP) render(m Message) []byte {
	var b bytes.Buffer
	hdr := func(k, v string) { fmt.Fprintf(&b, "%s: %s\r\n", k, headerSafe(v)) }

	hdr("From", m.From)
	hdr("To", strings.Join(m.To, ", "))
	if m.ReplyTo != "" {
		hdr("Reply-To", m.ReplyTo)
	}
	hdr("Subject", mime.QEncoding.Encode("utf-8", headerSafe(m.Subject)))
	hdr("Date", s.now().Format(time.RFC1123Z))
	hdr("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), s.cfg.Host))
	hdr("MIME-Version", "1.0")
	hdr("Content-Type", "text/plain; charset=UTF-8")
	hdr("Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")
	b.Write(bytes.ReplaceAll(bytes.ReplaceAll([]byte(m.Body), []byte("\r\n"), []byte("\n")), []byte("\n"), []byte("\r\n")))
	return b.Bytes()
}
