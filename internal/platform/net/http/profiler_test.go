package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "devsolutions/internal/platform/net/http"
)

func TestMountProfiler_Enabled(t *testing.T) {
	r := phttp.NewServer(phttp.ServerOptions{}).Router()
	phttp.MountProfiler(r, "/debug", true)

	for _, path := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 at %s, got %d", path, rec.Code)
		}
	}

	// the bare prefix redirects into /pprof/ or is unknown to the profiler mux
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/debug", nil))
	switch rec.Code {
	case http.StatusMovedPermanently, http.StatusPermanentRedirect, http.StatusNotFound:
	default:
		t.Fatalf("unexpected status at /debug: %d", rec.Code)
	}
}

func TestMountProfiler_Disabled(t *testing.T) {
	r := phttp.NewServer(phttp.ServerOptions{}).Router()
	phttp.MountProfiler(r, "/debug", false)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/debug/pprof/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when disabled, got %d", rec.Code)
	}
}
