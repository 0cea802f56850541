package module

import (
	"time"

	"devsolutions/internal/adapters/mail"
	"devsolutions/internal/core/ratelimit"
	"devsolutions/internal/platform/config"
)

// Options controls the submission quota, the mail relay and the archive
type Options struct {
	Window     time.Duration
	Max        int
	MaxEntries int // in-memory limiter bound; unused with redis

	Mail mail.Config
	// Transport overrides the transport built from Mail
	Transport mail.Transport

	// Archive stores submissions in postgres when PG is available
	Archive        bool
	ArchiveTimeout time.Duration
}

// FromConfig reads CONTACT_* and SMTP_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	cc := cfg.Prefix("CONTACT_")
	return Options{
		Window:         cc.MayDuration("RATE_WINDOW", ratelimit.ContactWindow),
		Max:            cc.MayInt("RATE_MAX", ratelimit.ContactMax),
		MaxEntries:     cc.MayInt("RATE_MAX_ENTRIES", ratelimit.DefaultMaxEntries),
		Mail:           mail.ConfigFromEnv(cfg),
		Archive:        cc.MayBool("ARCHIVE", false),
		ArchiveTimeout: cc.MayDuration("ARCHIVE_TIMEOUT", 5*time.Second),
	}
}
