// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"blogdesk/internal/codec"
	"blogdesk/internal/models"
)

const defaultPageSize = 20

// resource is an in-memory table served under /api/<plural>.
type resource[T any] struct {
	name     string
	plural   string
	items    []T
	getID    func(T) *int64
	setID    func(*T, int64)
	validate func(T) string
	merge    func(dst *T, patch T)
	text     func(T) string
	matches  func(T, string, string, string) bool
}

func (rs *resource[T]) indexOf(id int64) int {
	return slices.IndexFunc(rs.items, func(it T) bool {
		p := rs.getID(it)
		return p != nil && *p == id
	})
}

func postResource() *resource[codec.WirePost] {
	return &resource[codec.WirePost]{
		name:   "post",
		plural: "posts",
		getID:  func(p codec.WirePost) *int64 { return p.ID },
		setID:  func(p *codec.WirePost, id int64) { p.ID = &id },
		validate: func(p codec.WirePost) string {
			if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
				return "title must not be blank"
			}
			return ""
		},
		merge: mergePost,
		text: func(p codec.WirePost) string {
			if p.Title == nil {
				return ""
			}
			return *p.Title
		},
		matches: func(p codec.WirePost, field, op, value string) bool {
			switch field + "." + op {
			case "id.equals":
				return p.ID != nil && strconv.FormatInt(*p.ID, 10) == value
			case "title.equals":
				return p.Title != nil && *p.Title == value
			case "title.contains":
				return p.Title != nil && strings.Contains(strings.ToLower(*p.Title), strings.ToLower(value))
			case "categoryId.equals":
				return p.Category != nil && p.Category.ID != nil && strconv.FormatInt(*p.Category.ID, 10) == value
			case "state.equals":
				return p.State != nil && strconv.Itoa(*p.State) == value
			}
			return true
		},
	}
}

func categoryResource() *resource[models.Category] {
	return &resource[models.Category]{
		name:   "category",
		plural: "categories",
		getID:  func(c models.Category) *int64 { return c.ID },
		setID:  func(c *models.Category, id int64) { c.ID = &id },
		validate: func(c models.Category) string {
			if c.Name == nil || strings.TrimSpace(*c.Name) == "" {
				return "name must not be blank"
			}
			return ""
		},
		merge: mergeCategory,
		text: func(c models.Category) string {
			if c.Name == nil {
				return ""
			}
			return *c.Name
		},
		matches: func(c models.Category, field, op, value string) bool {
			switch field + "." + op {
			case "id.equals":
				return c.ID != nil && strconv.FormatInt(*c.ID, 10) == value
			case "name.contains":
				return c.Name != nil && strings.Contains(strings.ToLower(*c.Name), strings.ToLower(value))
			}
			return true
		},
	}
}

// mergePost applies a merge-patch: fields present in patch replace the
// stored ones, absent fields are kept.
func mergePost(dst *codec.WirePost, patch codec.WirePost) {
	mergeField(&dst.Title, patch.Title)
	mergeField(&dst.Slug, patch.Slug)
	mergeField(&dst.Summary, patch.Summary)
	mergeField(&dst.Body, patch.Body)
	mergeField(&dst.CreatedAt, patch.CreatedAt)
	mergeField(&dst.CreatedBy, patch.CreatedBy)
	mergeField(&dst.PublishedDate, patch.PublishedDate)
	mergeField(&dst.State, patch.State)
	mergeField(&dst.Tags, patch.Tags)
	mergeField(&dst.UpdatedAt, patch.UpdatedAt)
	mergeField(&dst.UpdatedBy, patch.UpdatedBy)
	mergeField(&dst.Category, patch.Category)
}

func mergeCategory(dst *models.Category, patch models.Category) {
	mergeField(&dst.Name, patch.Name)
	mergeField(&dst.Slug, patch.Slug)
	mergeField(&dst.Description, patch.Description)
	mergeField(&dst.ImageContentType, patch.ImageContentType)
	if patch.Image != nil {
		dst.Image = patch.Image
	}
}

func mergeField[V any](dst **V, src *V) {
	if src != nil {
		*dst = src
	}
}

func mountResource[T any](r chi.Router, s *Server, rs *resource[T]) {
	r.Route("/"+rs.plural, func(r chi.Router) {
		r.Post("/", createHandler(s, rs))
		r.Get("/", listHandler(s, rs, false))
		r.Get("/count", countHandler(s, rs))
		r.Get("/{id}", getHandler(s, rs))
		r.Put("/{id}", updateHandler(s, rs, false))
		r.Patch("/{id}", updateHandler(s, rs, true))
		r.Delete("/{id}", deleteHandler(s, rs))
	})
	r.Get("/_search/"+rs.plural, listHandler(s, rs, true))
}

func createHandler[T any](s *Server, rs *resource[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item T
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error(), "error.http.400")
			return
		}
		if rs.getID(item) != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "A new "+rs.name+" cannot already have an ID", "error.idexists")
			return
		}
		if msg := rs.validate(item); msg != "" {
			writeProblem(w, http.StatusBadRequest, "Method argument not valid", msg, "error.validation")
			return
		}

		s.mu.Lock()
		rs.setID(&item, *s.allocID())
		rs.items = append(rs.items, item)
		s.mu.Unlock()

		w.Header().Set("Location", "/api/"+rs.plural+"/"+strconv.FormatInt(*rs.getID(item), 10))
		writeJSON(w, http.StatusCreated, item)
	}
}

func updateHandler[T any](s *Server, rs *resource[T], partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if partial && !strings.HasPrefix(r.Header.Get("Content-Type"), "application/merge-patch+json") {
			writeProblem(w, http.StatusUnsupportedMediaType, "Unsupported Media Type", "expected application/merge-patch+json", "error.http.415")
			return
		}

		var item T
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error(), "error.http.400")
			return
		}
		bodyID := rs.getID(item)
		if bodyID == nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "Invalid id", "error.idnull")
			return
		}
		if *bodyID != id {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "Invalid ID", "error.idinvalid")
			return
		}
		if !partial {
			if msg := rs.validate(item); msg != "" {
				writeProblem(w, http.StatusBadRequest, "Method argument not valid", msg, "error.validation")
				return
			}
		}

		s.mu.Lock()
		i := rs.indexOf(id)
		if i < 0 {
			s.mu.Unlock()
			writeProblem(w, http.StatusNotFound, "Not Found", "Entity not found", "error.idnotfound")
			return
		}
		if partial {
			rs.merge(&rs.items[i], item)
		} else {
			rs.items[i] = item
		}
		saved := rs.items[i]
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, saved)
	}
}

func getHandler[T any](s *Server, rs *resource[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		s.mu.Lock()
		i := rs.indexOf(id)
		var item T
		if i >= 0 {
			item = rs.items[i]
		}
		s.mu.Unlock()

		if i < 0 {
			writeProblem(w, http.StatusNotFound, "Not Found", fmt.Sprintf("%s %d not found", rs.name, id), "error.http.404")
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func deleteHandler[T any](s *Server, rs *resource[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		s.mu.Lock()
		if i := rs.indexOf(id); i >= 0 {
			rs.items = slices.Delete(rs.items, i, i+1)
		}
		s.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}
}

func listHandler[T any](s *Server, rs *resource[T], search bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		s.mu.Lock()
		matched := rs.filter(q, search)
		s.mu.Unlock()

		if slices.Contains(q["sort"], "id,desc") {
			slices.Reverse(matched)
		}

		page, size := pageParams(q)
		start := min(page*size, len(matched))
		end := min(start+size, len(matched))

		w.Header().Set("X-Total-Count", strconv.Itoa(len(matched)))
		if link := linkHeader(r.URL, page, size, len(matched)); link != "" {
			w.Header().Set("Link", link)
		}
		writeJSON(w, http.StatusOK, matched[start:end])
	}
}

func countHandler[T any](s *Server, rs *resource[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		n := len(rs.filter(r.URL.Query(), false))
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, n)
	}
}

// filter returns a copy of the items matching every field.op filter in q,
// and the search query when search is set. The caller holds s.mu.
func (rs *resource[T]) filter(q url.Values, search bool) []T {
	needle := strings.ToLower(q.Get("query"))
	out := make([]T, 0, len(rs.items))
	for _, it := range rs.items {
		if search && needle != "" && !strings.Contains(strings.ToLower(rs.text(it)), needle) {
			continue
		}
		if rs.matchesAll(it, q) {
			out = append(out, it)
		}
	}
	return out
}

func (rs *resource[T]) matchesAll(it T, q url.Values) bool {
	for key, values := range q {
		dot := strings.LastIndexByte(key, '.')
		if dot <= 0 {
			continue
		}
		for _, v := range values {
			if !rs.matches(it, key[:dot], key[dot+1:], v) {
				return false
			}
		}
	}
	return true
}

func pageParams(q url.Values) (page, size int) {
	size = defaultPageSize
	if n, err := strconv.Atoi(q.Get("size")); err == nil && n > 0 {
		size = n
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n >= 0 {
		page = n
	}
	return page, size
}

// linkHeader renders first/prev/next/last relations the way the backend's
// pagination helper does.
func linkHeader(u *url.URL, page, size, total int) string {
	last := 0
	if total > 0 {
		last = (total - 1) / size
	}
	rel := func(p int, name string) string {
		v := u.Query()
		v.Set("page", strconv.Itoa(p))
		v.Set("size", strconv.Itoa(size))
		return fmt.Sprintf(`<%s?%s>; rel="%s"`, u.Path, v.Encode(), name)
	}

	var parts []string
	if page < last {
		parts = append(parts, rel(page+1, "next"))
	}
	if page > 0 {
		parts = append(parts, rel(page-1, "prev"))
	}
	parts = append(parts, rel(last, "last"), rel(0, "first"))
	return strings.Join(parts, ",")
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid id", "error.http.400")
		return 0, false
	}
	return id, true
}
