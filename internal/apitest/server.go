// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apitest runs an in-memory imitation of the blog REST API for
// tests. It stores posts exactly as they arrive on the wire, so tests can
// check what the client really sent.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"

	"blogdesk/internal/codec"
	"blogdesk/internal/models"
)

// RecordedRequest is a request seen by the fake server.
type RecordedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	RequestID   string
	Body        []byte
}

// Server is a fake blog backend.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	token      string
	nextID     int64
	posts      *resource[codec.WirePost]
	categories *resource[models.Category]
	account    *models.Account
	info       map[string]any
	requests   []RecordedRequest
}

// Option configures a Server.
type Option func(*Server)

// WithToken makes every /api route require the given bearer token.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// WithAccount sets the account returned by /api/account.
func WithAccount(acc *models.Account) Option {
	return func(s *Server) { s.account = acc }
}

// WithProfiles sets the payload of /management/info.
func WithProfiles(active []string, ribbon string) Option {
	return func(s *Server) {
		s.info = map[string]any{"activeProfiles": active, "display-ribbon-on-profiles": ribbon}
	}
}

// New starts a fake server. Call Close when done.
func New(opts ...Option) *Server {
	s := &Server{
		nextID: 1,
		info:   map[string]any{"activeProfiles": []string{"dev"}, "display-ribbon-on-profiles": "dev"},
	}
	s.posts = postResource()
	s.categories = categoryResource()
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoverer)
	r.Use(logger)
	r.Use(s.record)

	r.Get("/management/info", s.getInfo)

	r.Route("/api", func(r chi.Router) {
		r.Use(requireToken(s.token))

		r.Get("/account", s.getAccount)

		mountResource(r, s, s.posts)
		mountResource(r, s, s.categories)
	})
	return r
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request, or false if none arrived.
func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// SeedPost stores p as given and assigns an id when it has none.
func (s *Server) SeedPost(p codec.WirePost) codec.WirePost {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == nil {
		p.ID = s.allocID()
	}
	s.posts.items = append(s.posts.items, p)
	return p
}

// SeedCategory stores c and assigns an id when it has none.
func (s *Server) SeedCategory(c models.Category) models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == nil {
		c.ID = s.allocID()
	}
	s.categories.items = append(s.categories.items, c)
	return c
}

// StoredPost returns the wire form of a stored post.
func (s *Server) StoredPost(id int64) (codec.WirePost, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.posts.indexOf(id); i >= 0 {
		return s.posts.items[i], true
	}
	return codec.WirePost{}, false
}

func (s *Server) allocID() *int64 {
	id := s.nextID
	s.nextID++
	return &id
}

// SetAccount replaces the account returned by /api/account. nil makes the
// endpoint answer 401.
func (s *Server) SetAccount(acc *models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = acc
}
