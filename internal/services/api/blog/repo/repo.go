// Package repo reads blog posts stored as .mdx files with YAML front matter
package repo

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"

	perr "devsolutions/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// Ext is the post file extension
const Ext = ".mdx"

// FrontMatter is the YAML header of a post; every key is optional
type FrontMatter struct {
	Title    string `yaml:"title"`
	Date     string `yaml:"date"`
	Excerpt  string `yaml:"excerpt"`
	Category string `yaml:"category"`
	Author   string `yaml:"author"`
}

// RowPost is one parsed file
type RowPost struct {
	Slug    string
	Meta    FrontMatter
	Content string
}

// Repo defines the repository contract for posts
type Repo interface {
	All(ctx context.Context) ([]RowPost, error)
	One(ctx context.Context, slug string) (RowPost, error)
}

// FS implements Repo over a file system rooted at the posts directory
type FS struct{ fsys fs.FS }

// NewFS creates a post repo over fsys, typically os.DirFS(dir)
func NewFS(fsys fs.FS) *FS { return &FS{fsys: fsys} }

// All returns every post in name order. A missing directory yields no posts
func (r *FS) All(ctx context.Context) ([]RowPost, error) {
	entries, err := fs.ReadDir(r.fsys, ".")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "read posts dir")
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []RowPost
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != Ext {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := r.read(e.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// One returns the post stored as <slug>.mdx or a not found error
func (r *FS) One(_ context.Context, slug string) (RowPost, error) {
	p, err := r.read(slug + Ext)
	if errors.Is(err, fs.ErrNotExist) {
		return RowPost{}, perr.NotFoundf("post not found")
	}
	return p, err
}

func (r *FS) read(name string) (RowPost, error) {
	raw, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return RowPost{}, err
		}
		return RowPost{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "read post %s", name)
	}
	meta, content, err := Parse(raw)
	if err != nil {
		return RowPost{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "parse front matter of %s", name)
	}
	return RowPost{Slug: strings.TrimSuffix(name, Ext), Meta: meta, Content: content}, nil
}

var fence = []byte("---")

// Parse splits a document into its front matter and body. A document that does
// not open with a --- line has no front matter
func Parse(raw []byte) (FrontMatter, string, error) {
	var fm FrontMatter
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))

	first, rest, ok := bytes.Cut(raw, []byte("\n"))
	if !ok || !bytes.Equal(bytes.TrimSpace(first), fence) {
		return fm, string(raw), nil
	}

	var header []byte
	for {
		line, tail, more := bytes.Cut(rest, []byte("\n"))
		if bytes.Equal(bytes.TrimSpace(line), fence) {
			if err := yaml.Unmarshal(header, &fm); err != nil {
				return FrontMatter{}, "", err
			}
			return fm, string(tail), nil
		}
		if !more {
			// unterminated header: the whole file is body
			return FrontMatter{}, string(raw), nil
		}
		header = append(append(header, line...), '\n')
		rest = tail
	}
}
