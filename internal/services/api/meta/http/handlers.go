// Package http serves liveness, readiness and build info
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"devsolutions/internal/core/version"
	"devsolutions/internal/modkit/httpkit"
	ptime "devsolutions/internal/platform/time"

	"golang.org/x/sync/errgroup"
)

// ReadyTimeout bounds all readiness checks together
const ReadyTimeout = 2 * time.Second

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(stdctx.Context) error

// Ping implements Pinger
func (f PingFunc) Ping(ctx stdctx.Context) error { return f(ctx) }

// Check is one named readiness probe; a nil Pinger reports skipped
type Check struct {
	Name string
	Ping Pinger
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Clock       ptime.Clock
	Checks      []Check
	Backends    Backends
}

// Backends says which optional paths the contact pipeline runs on
type Backends struct {
	Limiter string `json:"limiter" example:"memory"` // memory or redis
	Mail    string `json:"mail"    example:"log"`    // smtp or log
	Archive bool   `json:"archive" example:"false"`
}

type handlers struct{ deps Deps }

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"devsolutions-api"`
	Started string `json:"started"  example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2025-09-03T13:05:00Z"`
}

// CheckResult is the outcome of one readiness probe
type CheckResult struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string        `json:"status" example:"ok"` // ok fail
	Checks []CheckResult `json:"checks"`
	Now    string        `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes the running instance
type ServiceResponse struct {
	Name     string   `json:"name"    example:"devsolutions-api"`
	Started  string   `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime   int64    `json:"uptime"  example:"300"`
	Backends Backends `json:"backends"`
}

func (h *handlers) now() string { return h.deps.Clock.Now().UTC().Format(time.RFC3339) }

// swagger:route GET /meta/health Meta metaHealth
// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.now(),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness with backend checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), ReadyTimeout)
	defer cancel()

	results := make([]CheckResult, len(h.deps.Checks))
	var g errgroup.Group
	for i, c := range h.deps.Checks {
		results[i] = CheckResult{Name: c.Name, Status: "skipped"}
		if c.Ping == nil {
			continue
		}
		g.Go(func() error {
			if err := c.Ping.Ping(ctx); err != nil {
				results[i].Status, results[i].Error = "fail", err.Error()
				return nil
			}
			results[i].Status = "ok"
			return nil
		})
	}
	_ = g.Wait()

	resp := ReadyResponse{Status: "ok", Checks: results, Now: h.now()}
	for _, c := range results {
		if c.Status == "fail" {
			resp.Status = "fail"
			return httpkit.Response{Status: http.StatusServiceUnavailable, Body: resp}, nil
		}
	}
	return resp, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Uptime and active backends
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:     h.deps.ServiceName,
		Started:  h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:   int64(h.deps.Clock.Now().Sub(h.deps.StartedAt) / time.Second),
		Backends: h.deps.Backends,
	}, nil
}
