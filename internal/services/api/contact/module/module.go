// Package module wires contact submissions into the API using modkit
package module

import (
	"devsolutions/internal/adapters/mail"
	"devsolutions/internal/core/ratelimit"
	modkit "devsolutions/internal/modkit"
	"devsolutions/internal/modkit/httpkit"
	"devsolutions/internal/modkit/repokit"
	"devsolutions/internal/platform/logger"
	str "devsolutions/internal/platform/strings"

	contacthttp "devsolutions/internal/services/api/contact/http"
	contactrepo "devsolutions/internal/services/api/contact/repo"
	contactsvc "devsolutions/internal/services/api/contact/service"
)

// Module implements the modkit.Module interface
type Module struct {
	b   modkit.Built
	svc contactsvc.Service
}

// New constructs the contact module from CONTACT_* and SMTP_* config
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWithOptions(deps, FromConfig(deps.Cfg), opts...)
}

// NewWithOptions constructs the contact module from explicit options
func NewWithOptions(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("contact"), modkit.WithPrefix("/contact")}, opts...)...)
	log := logger.Named("contact")

	var store ratelimit.Store
	if deps.Redis != nil {
		store = ratelimit.NewRedisStore(deps.Redis, "rl:")
	} else {
		store = ratelimit.NewMemoryStore(o.MaxEntries)
	}
	limiter := ratelimit.New(store, ratelimit.Options{
		Name:   "contact",
		Window: o.Window,
		Max:    o.Max,
		Clock:  deps.Clock,
	})

	tr := o.Transport
	if tr == nil {
		tr = mail.New(o.Mail)
	}

	so := contactsvc.Options{
		Limiter:   limiter,
		Deliverer: contactsvc.MailDeliverer{T: tr},
		Clock:     deps.Clock,
	}
	switch {
	case o.Archive && deps.PG != nil:
		db := repokit.WithBeginHooks(deps.PG, repokit.StatementTimeout(o.ArchiveTimeout))
		so.Archive = contactsvc.NewArchive(db, contactrepo.NewPG())
	case o.Archive:
		log.Warn().Msg("contact archive enabled but postgres is not configured; archive disabled")
	}

	policy := limiter.Policy()
	log.Info().
		Str("transport", tr.Name()).
		Dur("window", policy.Window).
		Int("max", policy.Max).
		Bool("redis", deps.Redis != nil).
		Bool("archive", so.Archive != nil).
		Msg("contact module ready")

	return &Module{b: b, svc: contactsvc.New(so)}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { contacthttp.Register(rr, m.svc) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Ports returns the contact service port
func (m *Module) Ports() any { return m.svc }
