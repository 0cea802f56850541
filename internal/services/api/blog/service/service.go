// Package service contains blog read workflows
package service

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	perr "devsolutions/internal/platform/errors"
	ptime "devsolutions/internal/platform/time"
	"devsolutions/internal/services/api/blog/domain"
	"devsolutions/internal/services/api/blog/repo"
)

// Front matter defaults
const (
	DefaultCategory = "General"
	DefaultAuthor   = "DevSolutions Team"
	wordsPerMinute  = 200
)

var slugRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Service defines the service contract for the blog
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	repo  repo.Repo
	clock ptime.Clock
}

// New creates a blog service
func New(r repo.Repo, clock ptime.Clock) *Svc {
	if r == nil {
		panic("blog.Service requires a non nil Repo")
	}
	return &Svc{repo: r, clock: clock}
}

// List returns every post without content, newest first
func (s *Svc) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Post, 0, len(rows))
	for _, r := range rows {
		out = append(out, s.toPost(r))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// Get returns one post with content; unknown or malformed slugs are not found
func (s *Svc) Get(ctx context.Context, slug string) (domain.Post, error) {
	if !slugRe.MatchString(slug) {
		return domain.Post{}, perr.NotFoundf("post not found")
	}
	r, err := s.repo.One(ctx, slug)
	if err != nil {
		return domain.Post{}, err
	}
	p := s.toPost(r)
	p.Content = r.Content
	return p, nil
}

func (s *Svc) toPost(r repo.RowPost) domain.Post {
	m := r.Meta
	return domain.Post{
		Slug:        r.Slug,
		Title:       or(m.Title, r.Slug),
		Date:        or(m.Date, s.clock.Now().UTC().Format(time.RFC3339)),
		Excerpt:     m.Excerpt,
		Category:    or(m.Category, DefaultCategory),
		Author:      or(m.Author, DefaultAuthor),
		ReadingTime: ReadingTime(r.Content),
	}
}

// ReadingTime estimates minutes at 200 words per minute, rounded up
func ReadingTime(content string) int {
	return int(math.Ceil(float64(len(strings.Fields(content))) / wordsPerMinute))
}

func or(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
