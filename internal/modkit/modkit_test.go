package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"devsolutions/internal/modkit/httpkit"
	phttp "devsolutions/internal/platform/net/http"
	"devsolutions/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestBuildLaterOptionsWin(t *testing.T) {
	t.Parallel()

	if b := Build(); b != (Built{}) {
		t.Fatalf("zero options = %+v", b)
	}
	b := Build(WithName("contact"), WithPrefix("/contact"), WithName("inquiries"))
	if b.Name != "inquiries" || b.Prefix != "/contact" {
		t.Fatalf("built = %+v", b)
	}
}

func TestBuiltMountNormalizesPrefix(t *testing.T) {
	t.Parallel()

	mux := chi.NewRouter()
	Build(WithPrefix("blog/")).Mount(phttp.AdaptChi(mux), func(r httpkit.Router) {
		r.Get("/latest", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/blog/latest", nil))
	if rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestBuiltMountRejectsEmptyPrefix(t *testing.T) {
	t.Parallel()
	testkit.MustPanic(t, func() {
		Build().Mount(phttp.AdaptChi(chi.NewRouter()), func(httpkit.Router) {})
	})
}
