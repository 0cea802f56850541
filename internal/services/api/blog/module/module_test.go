package module_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	modkit "devsolutions/internal/modkit"
	"devsolutions/internal/platform/config"
	phttp "devsolutions/internal/platform/net/http"
	ptime "devsolutions/internal/platform/time"
	blogmod "devsolutions/internal/services/api/blog/module"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleReadsBlogDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "first.mdx"), []byte("---\ntitle: First\n---\nbody"), 0o600))
	t.Setenv("CORE_API_BLOG_DIR", dir)

	m := blogmod.New(modkit.Deps{Cfg: config.New().Prefix("CORE_API_"), Clock: ptime.System})
	assert.Equal(t, "blog", m.Name())
	assert.NotNil(t, m.Ports())

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	for path, want := range map[string]int{"/blog": http.StatusOK, "/blog/first": http.StatusOK, "/blog/second": http.StatusNotFound} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rr.Code, path)
	}
}
