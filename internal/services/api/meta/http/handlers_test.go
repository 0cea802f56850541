package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devsolutions/internal/modkit/httpkit"
	phttp "devsolutions/internal/platform/net/http"
	ptime "devsolutions/internal/platform/time"
	metahttp "devsolutions/internal/services/api/meta/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var started = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func mount(d metahttp.Deps) http.Handler {
	mux := chi.NewRouter()
	metahttp.Register(phttp.AdaptChi(mux), d)
	return mux
}

func get(t *testing.T, h http.Handler, path string) (int, httpkit.Envelope) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	var env httpkit.Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return rr.Code, env
}

func TestHealthAndService(t *testing.T) {
	t.Parallel()
	h := mount(metahttp.Deps{
		ServiceName: "devsolutions-api",
		StartedAt:   started,
		Clock:       ptime.Fixed(started.Add(5 * time.Minute)),
		Backends:    metahttp.Backends{Limiter: "redis", Mail: "log"},
	})

	code, env := get(t, h, "/health")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{
		"ok":      true,
		"service": "devsolutions-api",
		"started": "2025-03-01T12:00:00Z",
		"now":     "2025-03-01T12:05:00Z",
	}, env.Data)

	_, env = get(t, h, "/service")
	svc := env.Data.(map[string]any)
	assert.EqualValues(t, 300, svc["uptime"])
	assert.Equal(t, map[string]any{"limiter": "redis", "mail": "log", "archive": false}, svc["backends"])

	_, env = get(t, h, "/version")
	assert.Equal(t, "devsolutions-api", env.Data.(map[string]any)["service"])
}

func TestReady(t *testing.T) {
	t.Parallel()
	ok := metahttp.PingFunc(func(context.Context) error { return nil })
	down := metahttp.PingFunc(func(context.Context) error { return errors.New("connection refused") })

	cases := []struct {
		name   string
		pg     metahttp.Pinger
		redis  metahttp.Pinger
		code   int
		status string
		want   []string
	}{
		{"nothing configured", nil, nil, http.StatusOK, "ok", []string{"skipped", "skipped"}},
		{"all up", ok, ok, http.StatusOK, "ok", []string{"ok", "ok"}},
		{"redis down", ok, down, http.StatusServiceUnavailable, "fail", []string{"ok", "fail"}},
		{"pg down", down, nil, http.StatusServiceUnavailable, "fail", []string{"fail", "skipped"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := mount(metahttp.Deps{StartedAt: started, Clock: ptime.Fixed(started), Checks: []metahttp.Check{
				{Name: "pg", Ping: c.pg},
				{Name: "redis", Ping: c.redis},
			}})
			code, env := get(t, h, "/ready")
			require.Equal(t, c.code, code)
			data := env.Data.(map[string]any)
			assert.Equal(t, c.status, data["status"])

			checks := data["checks"].([]any)
			require.Len(t, checks, 2)
			for i, want := range c.want {
				chk := checks[i].(map[string]any)
				assert.Equal(t, want, chk["status"], chk["name"])
			}
		})
	}
}

func TestReadyHonorsTimeout(t *testing.T) {
	t.Parallel()
	slow := metahttp.PingFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	h := mount(metahttp.Deps{Clock: ptime.System, Checks: []metahttp.Check{{Name: "pg", Ping: slow}}})

	start := time.Now()
	code, _ := get(t, h, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Less(t, time.Since(start), metahttp.ReadyTimeout+time.Second)
}
