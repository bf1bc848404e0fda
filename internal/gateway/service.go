// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package gateway exposes the CRUD and search operations of the blog API
// per entity. Every call issues exactly one HTTP request and runs the
// entity codec on the way out and on the way back. Nothing is cached and
// nothing is retried.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"blogdesk/internal/api"
	"blogdesk/internal/task"
)

// Codec maps an entity D to and from its wire form W.
type Codec[D, W any] struct {
	Encode   func(*D) *W
	Decode   func(*W) *D
	Identity func(D) (int64, bool)
}

// Service is the gateway for one resource. Resource URLs are resolved once
// in the constructor and never change.
type Service[D, W any] struct {
	client      *api.Client
	name        string
	resourceURL string
	searchURL   string
	codec       Codec[D, W]
}

// newService builds a gateway for the resource at "api/<plural>" with its
// search index at "api/_search/<plural>".
func newService[D, W any](client *api.Client, name, plural string, codec Codec[D, W]) *Service[D, W] {
	return &Service[D, W]{
		client:      client,
		name:        name,
		resourceURL: client.Endpoint("api/" + plural),
		searchURL:   client.Endpoint("api/_search/" + plural),
		codec:       codec,
	}
}

// ResourceURL returns the collection endpoint, e.g. ".../api/posts".
func (s *Service[D, W]) ResourceURL() string { return s.resourceURL }

// SearchURL returns the search endpoint, e.g. ".../api/_search/posts".
func (s *Service[D, W]) SearchURL() string { return s.searchURL }

// Create sends a new entity and returns the server's copy, including its id.
func (s *Service[D, W]) Create(ctx context.Context, entity *D) (*D, error) {
	if entity == nil {
		return nil, fmt.Errorf("create %s: %w", s.name, api.ErrNilEntity)
	}
	var out W
	_, err := s.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		URL:    s.resourceURL,
		Body:   s.codec.Encode(entity),
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.name, err)
	}
	return s.codec.Decode(&out), nil
}

// Update replaces the entity addressed by its id. Drafts are rejected with
// api.ErrMissingIdentity before any request is made.
func (s *Service[D, W]) Update(ctx context.Context, entity *D) (*D, error) {
	return s.write(ctx, "update", http.MethodPut, "", entity)
}

// PartialUpdate sends a merge-patch with every field currently set on the
// entity. Drafts are rejected with api.ErrMissingIdentity.
func (s *Service[D, W]) PartialUpdate(ctx context.Context, entity *D) (*D, error) {
	return s.write(ctx, "partial update", http.MethodPatch, api.ContentTypeMergePatch, entity)
}

func (s *Service[D, W]) write(ctx context.Context, op, method, contentType string, entity *D) (*D, error) {
	if entity == nil {
		return nil, fmt.Errorf("%s %s: %w", op, s.name, api.ErrMissingIdentity)
	}
	id, ok := s.codec.Identity(*entity)
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", op, s.name, api.ErrMissingIdentity)
	}

	var out W
	_, err := s.client.Do(ctx, api.Request{
		Method:      method,
		URL:         s.itemURL(id),
		Body:        s.codec.Encode(entity),
		ContentType: contentType,
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("%s %s %d: %w", op, s.name, id, err)
	}
	return s.codec.Decode(&out), nil
}

// Save creates drafts and updates persisted entities.
func (s *Service[D, W]) Save(ctx context.Context, entity *D) (*D, error) {
	if entity != nil {
		if _, ok := s.codec.Identity(*entity); ok {
			return s.Update(ctx, entity)
		}
	}
	return s.Create(ctx, entity)
}

// Find fetches one entity by id.
func (s *Service[D, W]) Find(ctx context.Context, id int64) (*D, error) {
	var out W
	if _, err := s.client.Get(ctx, s.itemURL(id), nil, &out); err != nil {
		return nil, fmt.Errorf("find %s %d: %w", s.name, id, err)
	}
	return s.codec.Decode(&out), nil
}

// List fetches one page of the collection. opts are forwarded as query
// parameters.
func (s *Service[D, W]) List(ctx context.Context, opts api.RequestOptions) (*api.Page[D], error) {
	page, err := s.fetch(ctx, s.resourceURL, opts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.name, err)
	}
	return page, nil
}

// Search queries the full-text index. It decodes like List.
func (s *Service[D, W]) Search(ctx context.Context, opts api.RequestOptions) (*api.Page[D], error) {
	page, err := s.fetch(ctx, s.searchURL, opts)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.name, err)
	}
	return page, nil
}

// Count returns the number of entities matching the filters in opts.
func (s *Service[D, W]) Count(ctx context.Context, opts api.RequestOptions) (int64, error) {
	var n int64
	if _, err := s.client.Get(ctx, s.resourceURL+"/count", opts.Values(), &n); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.name, err)
	}
	return n, nil
}

// Remove deletes the entity with the given id. The response body is ignored.
func (s *Service[D, W]) Remove(ctx context.Context, id int64) error {
	_, err := s.client.Do(ctx, api.Request{Method: http.MethodDelete, URL: s.itemURL(id)}, nil)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", s.name, id, err)
	}
	return nil
}

func (s *Service[D, W]) fetch(ctx context.Context, target string, opts api.RequestOptions) (*api.Page[D], error) {
	wire, err := api.FetchPage[W](ctx, s.client, target, opts)
	if err != nil {
		return nil, err
	}
	var items []D
	if wire.Items != nil {
		items = make([]D, len(wire.Items))
		for i := range wire.Items {
			items[i] = *s.codec.Decode(&wire.Items[i])
		}
	}
	return &api.Page[D]{Items: items, TotalCount: wire.TotalCount, Links: wire.Links}, nil
}

func (s *Service[D, W]) itemURL(id int64) string {
	return s.resourceURL + "/" + strconv.FormatInt(id, 10)
}

// FindAsync runs Find as a task.
func (s *Service[D, W]) FindAsync(ctx context.Context, id int64) *task.Task[*D] {
	return task.Go(ctx, func(ctx context.Context) (*D, error) {
		return s.Find(ctx, id)
	})
}

// ListAsync runs List as a task.
func (s *Service[D, W]) ListAsync(ctx context.Context, opts api.RequestOptions) *task.Task[*api.Page[D]] {
	return task.Go(ctx, func(ctx context.Context) (*api.Page[D], error) {
		return s.List(ctx, opts)
	})
}

// SearchAsync runs Search as a task.
func (s *Service[D, W]) SearchAsync(ctx context.Context, opts api.RequestOptions) *task.Task[*api.Page[D]] {
	return task.Go(ctx, func(ctx context.Context) (*api.Page[D], error) {
		return s.Search(ctx, opts)
	})
}

// SaveAsync runs Save as a task.
func (s *Service[D, W]) SaveAsync(ctx context.Context, entity *D) *task.Task[*D] {
	return task.Go(ctx, func(ctx context.Context) (*D, error) {
		return s.Save(ctx, entity)
	})
}
