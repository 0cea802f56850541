// Package module wires the meta endpoints into the API
package module

import (
	"context"

	"devsolutions/internal/core/version"
	modkit "devsolutions/internal/modkit"
	"devsolutions/internal/modkit/httpkit"
	str "devsolutions/internal/platform/strings"

	contactmod "devsolutions/internal/services/api/contact/module"
	metahttp "devsolutions/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New builds the meta module. Readiness always lists pg and redis so a
// missing backend shows up as skipped rather than vanishing
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	pg := metahttp.Check{Name: "pg"}
	if p, ok := deps.PG.(metahttp.Pinger); ok {
		pg.Ping = p
	}
	rd := metahttp.Check{Name: "redis"}
	if rdb := deps.Redis; rdb != nil {
		rd.Ping = metahttp.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	return &Module{b: b, deps: metahttp.Deps{
		ServiceName: version.Service,
		StartedAt:   deps.Clock.Now(),
		Clock:       deps.Clock,
		Checks:      []metahttp.Check{pg, rd},
		Backends:    backends(deps),
	}}
}

// backends mirrors the choices the contact module makes from the same deps
func backends(deps modkit.Deps) metahttp.Backends {
	co := contactmod.FromConfig(deps.Cfg)
	out := metahttp.Backends{Limiter: "memory", Mail: "log", Archive: co.Archive && deps.PG != nil}
	if deps.Redis != nil {
		out.Limiter = "redis"
	}
	if co.Mail.Configured() {
		out.Mail = "smtp"
	}
	return out
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
