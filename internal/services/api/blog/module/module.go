// Package module wires the blog reader into the API using modkit
package module

import (
	"os"

	modkit "devsolutions/internal/modkit"
	"devsolutions/internal/modkit/httpkit"
	str "devsolutions/internal/platform/strings"

	bloghttp "devsolutions/internal/services/api/blog/http"
	blogrepo "devsolutions/internal/services/api/blog/repo"
	blogsvc "devsolutions/internal/services/api/blog/service"
)

// DefaultDir is where posts live relative to the working directory
const DefaultDir = "content/blog"

// Module implements the modkit.Module interface
type Module struct {
	b   modkit.Built
	svc blogsvc.Service
}

// New constructs the blog module reading posts from BLOG_DIR
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("blog"), modkit.WithPrefix("/blog")}, opts...)...)
	dir := deps.Cfg.MayString("BLOG_DIR", DefaultDir)
	return &Module{b: b, svc: blogsvc.New(blogrepo.NewFS(os.DirFS(dir)), deps.Clock)}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { bloghttp.Register(rr, m.svc) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Ports returns the blog service port
func (m *Module) Ports() any { return m.svc }
