// Package http provides http transport for the blog
package http

import (
	stdhttp "net/http"

	"devsolutions/internal/modkit/httpkit"
	svc "devsolutions/internal/services/api/blog/service"

	"github.com/go-chi/chi/v5"
)

// Register mounts blog endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{slug}", h.get)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /blog Blog blogList
// @Summary List blog posts, newest first
// @Tags Blog
// @Produce json
// @Success 200 {array} domain.Post
// @Router /blog [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

// swagger:route GET /blog/{slug} Blog blogGet
// @Summary One blog post with content
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} domain.Post
// @Failure 404 {object} httpkit.Envelope
// @Router /blog/{slug} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), chi.URLParam(r, "slug"))
}
