package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "devsolutions/internal/platform/errors"
	pnet "devsolutions/internal/platform/net"
	phttp "devsolutions/internal/platform/net/http"
)

func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequest(req.Context(), rid, ""))
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.JSON(rec, http.StatusTeapot, map[string]any{"k": "v"})
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}
}

func TestHandle_OKEnvelope(t *testing.T) {
	h := phttp.Handle(func(*http.Request) phttp.Response { return phttp.OK(map[string]string{"a": "b"}) })
	rec := httptest.NewRecorder()
	h(rec, reqWithReqID("GET", "/x", "rid-1"))

	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Code != http.StatusOK || env.StatusCode != 200 || env.RequestID != "rid-1" {
		t.Fatalf("bad envelope: %d %+v", rec.Code, env)
	}
	if m, ok := env.Data.(map[string]any); !ok || m["a"] != "b" {
		t.Fatalf("data = %#v", env.Data)
	}
}

func TestHandle_ErrorEnvelopeCarriesDetailsAndRetryAfter(t *testing.T) {
	err := perr.WithDetails(perr.Validationf("Invalid form data"), []string{"name"})
	h := phttp.Handle(func(*http.Request) phttp.Response { return phttp.Error(err) })
	rec := httptest.NewRecorder()
	h(rec, reqWithReqID("POST", "/x", "rid-2"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var env phttp.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Code != perr.ErrorCodeValidation || env.Error != "Invalid form data" || env.Details == nil {
		t.Fatalf("bad envelope: %+v", env)
	}

	throttled := perr.WithRetryAfter(perr.TooManyRequestsf("slow down"), 1500*time.Millisecond)
	rec2 := httptest.NewRecorder()
	phttp.RespondError(rec2, reqWithReqID("GET", "/y", ""), throttled)
	if rec2.Code != http.StatusTooManyRequests || rec2.Header().Get("Retry-After") != "2" {
		t.Fatalf("throttle: %d retry-after=%q", rec2.Code, rec2.Header().Get("Retry-After"))
	}

	rec3 := httptest.NewRecorder()
	phttp.RespondError(rec3, reqWithReqID("GET", "/z", ""), errors.New("boom"))
	if rec3.Code != http.StatusInternalServerError {
		t.Fatalf("foreign error status = %d", rec3.Code)
	}
}

func TestHandle_BareAndHeaders(t *testing.T) {
	h := phttp.Handle(func(*http.Request) phttp.Response {
		resp := phttp.Bare(http.StatusAccepted, map[string]bool{"ok": true})
		resp.Header = http.Header{"X-Extra": []string{"1"}}
		return resp
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("POST", "/", nil))
	if rec.Code != http.StatusAccepted || rec.Header().Get("X-Extra") != "1" {
		t.Fatalf("bare: %d %v", rec.Code, rec.Header())
	}
	if got := rec.Body.String(); got != "{\"ok\":true}\n" {
		t.Fatalf("bare body = %q", got)
	}
}

func TestHandle_NoContentAndDefaultStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Response{Status: http.StatusNoContent}
	})(rec, httptest.NewRequest("DELETE", "/", nil))
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("no content: %d %q", rec.Code, rec.Body.String())
	}

	rec2 := httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response { return phttp.Response{Body: "x"} })(rec2, httptest.NewRequest("GET", "/", nil))
	if rec2.Code != http.StatusOK {
		t.Fatalf("zero status should default to 200, got %d", rec2.Code)
	}
}

func TestSetRetryAfter(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, ""},
		{-time.Second, ""},
		{time.Millisecond, "1"},
		{time.Hour, "3600"},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		phttp.SetRetryAfter(rec, c.d)
		if got := rec.Header().Get("Retry-After"); got != c.want {
			t.Fatalf("SetRetryAfter(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}
