// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor backs the post edit screen: it loads the post together
// with the category options, turns form input into a post and saves it.
package editor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"blogdesk/internal/api"
	"blogdesk/internal/collection"
	"blogdesk/internal/gateway"
	"blogdesk/internal/markdown"
	"blogdesk/internal/models"
	"blogdesk/internal/slug"
)

// categoryPageSize bounds the category options fetched for the form.
const categoryPageSize = 1000

// summaryLength is the length of summaries derived from the body.
const summaryLength = 280

// Form is a loaded edit screen. Post is nil when creating a new post.
type Form struct {
	Post       *models.Post
	Categories []models.Category
}

// Input is the raw form input. Empty strings mean "not set".
type Input struct {
	Title         string
	Slug          string
	Summary       string
	Body          string
	Tags          string
	State         *int
	PublishedDate string
	CategoryID    *int64
}

// Editor loads and saves posts.
type Editor struct {
	posts      *gateway.PostService
	categories *gateway.CategoryService
	now        func() time.Time
}

// New returns an editor over the given gateways.
func New(posts *gateway.PostService, categories *gateway.CategoryService) *Editor {
	return &Editor{posts: posts, categories: categories, now: time.Now}
}

// Load fetches the post with the given id and the category options at the
// same time. A nil id loads an empty form. The post's own category is
// added to the options when the listing does not include it.
func (e *Editor) Load(ctx context.Context, id *int64) (*Form, error) {
	g, ctx := errgroup.WithContext(ctx)

	var post *models.Post
	if id != nil {
		g.Go(func() error {
			p, err := e.posts.Find(ctx, *id)
			if err != nil {
				return err
			}
			post = p
			return nil
		})
	}

	var options []models.Category
	g.Go(func() error {
		page, err := e.categories.List(ctx, api.Paged(0, categoryPageSize, "name,asc"))
		if err != nil {
			return err
		}
		options = page.Items
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load editor: %w", err)
	}

	form := &Form{Post: post, Categories: options}
	if post != nil {
		form.Categories = collection.AddIfMissing(options, post.Category)
	}
	return form, nil
}

// Category returns the option with the given id.
func (f *Form) Category(id int64) (*models.Category, bool) {
	for i := range f.Categories {
		if cid, ok := f.Categories[i].Identity(); ok && cid == id {
			return &f.Categories[i], true
		}
	}
	return nil, false
}

// Apply builds the post to save from in, starting from the loaded post.
// Missing slugs are derived from the title and missing summaries from the
// body. The loaded post is not modified.
func (e *Editor) Apply(f *Form, in Input) (*models.Post, error) {
	var p models.Post
	if f.Post != nil {
		p = *f.Post
	}
	now := models.NewMoment(e.now().UTC())
	if p.IsNew() {
		p.CreatedAt = now
	} else {
		p.UpdatedAt = now
	}

	p.Title = strings.TrimSpace(in.Title)
	p.Slug = optional(in.Slug)
	if p.Slug == nil && p.Title != "" {
		p.Slug = optional(slug.Generate(p.Title))
	}
	p.Body = optional(in.Body)
	p.Summary = optional(in.Summary)
	if p.Summary == nil && p.Body != nil {
		p.Summary = optional(markdown.Summary(*p.Body, summaryLength))
	}
	p.Tags = optional(in.Tags)
	p.State = in.State

	p.PublishedDate = nil
	if s := strings.TrimSpace(in.PublishedDate); s != "" {
		m := models.ParseMoment(s)
		p.PublishedDate = &m
	}

	p.Category = nil
	if in.CategoryID != nil {
		c, ok := f.Category(*in.CategoryID)
		if !ok {
			return nil, &FieldError{Field: "category", Message: fmt.Sprintf("Unknown category %d.", *in.CategoryID)}
		}
		p.Category = c.Clone()
	}

	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save validates p and creates or updates it.
func (e *Editor) Save(ctx context.Context, p *models.Post) (*models.Post, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	saved, err := e.posts.Save(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	return saved, nil
}

// Preview renders the post body as HTML. Raw HTML in the body is dropped
// unless rawHTML is set.
func Preview(p *models.Post, rawHTML bool) (string, error) {
	if p.Body == nil {
		return "", nil
	}
	render := markdown.ToHTML
	if rawHTML {
		render = markdown.ToHTMLUnsafe
	}
	html, err := render(*p.Body)
	if err != nil {
		return "", fmt.Errorf("preview post: %w", err)
	}
	return html, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
