// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	// TotalCountHeader carries the total number of matching entities.
	TotalCountHeader = "X-Total-Count"

	// LinkHeader carries RFC 5988 pagination links.
	LinkHeader = "Link"
)

// Page is one page of a list or search result.
type Page[T any] struct {
	Items []T

	// TotalCount is -1 when the server did not send X-Total-Count.
	TotalCount int64

	// Links maps relation names ("first", "prev", "next", "last") to
	// zero-based page numbers.
	Links map[string]int
}

// HasNext reports whether the server advertised a next page.
func (p *Page[T]) HasNext() bool {
	_, ok := p.Links["next"]
	return ok
}

// linkPart matches one `<url>; rel="name"` element of a Link header.
// URLs may contain commas (sort=id,desc), so the header is not split on them.
var linkPart = regexp.MustCompile(`<([^>]*)>\s*;\s*rel="?([^",;]+)"?`)

// ParseLinks extracts the page number of every relation in a Link header.
// Links without a page parameter are ignored.
func ParseLinks(header string) map[string]int {
	links := make(map[string]int)
	if strings.TrimSpace(header) == "" {
		return links
	}
	for _, m := range linkPart.FindAllStringSubmatch(header, -1) {
		u, err := url.Parse(m[1])
		if err != nil {
			continue
		}
		page, err := strconv.Atoi(u.Query().Get("page"))
		if err != nil {
			continue
		}
		links[strings.TrimSpace(m[2])] = page
	}
	return links
}

// newPage wraps items with the pagination headers of resp.
func newPage[T any](items []T, h http.Header) *Page[T] {
	total := int64(-1)
	if v := h.Get(TotalCountHeader); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			total = n
		}
	}
	return &Page[T]{
		Items:      items,
		TotalCount: total,
		Links:      ParseLinks(h.Get(LinkHeader)),
	}
}
