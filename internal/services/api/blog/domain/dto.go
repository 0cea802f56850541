// Package domain holds DTOs for blog http and service contracts
package domain

import "context"

// Post is a blog post; Content is only set when reading a single post
type Post struct {
	Slug        string `json:"slug" example:"sql-tips"`
	Title       string `json:"title" example:"Ten SQL tips"`
	Date        string `json:"date" example:"2025-01-15"`
	Excerpt     string `json:"excerpt" example:"Small habits that keep queries fast"`
	Category    string `json:"category" example:"Engineering"`
	Author      string `json:"author" example:"DevSolutions Team"`
	ReadingTime int    `json:"readingTime" example:"4"`
	Content     string `json:"content,omitempty"`
}

// ServicePort defines the service contract for the blog
type ServicePort interface {
	List(ctx context.Context) ([]Post, error)
	Get(ctx context.Context, slug string) (Post, error)
}
