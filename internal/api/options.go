// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"net/url"
	"strconv"
)

// RequestOptions are the query parameters of list, search and count calls.
// Zero values are left out. Extra is copied verbatim, so callers can pass
// parameters this package knows nothing about.
type RequestOptions struct {
	Page    *int
	Size    *int
	Sort    []string // e.g. "id,desc"
	Query   string   // full-text query, used by search endpoints
	Filters Criteria
	Extra   url.Values
}

// Values encodes the options as URL query parameters.
func (o RequestOptions) Values() url.Values {
	v := url.Values{}
	if o.Page != nil {
		v.Set("page", strconv.Itoa(*o.Page))
	}
	if o.Size != nil {
		v.Set("size", strconv.Itoa(*o.Size))
	}
	for _, s := range o.Sort {
		v.Add("sort", s)
	}
	if o.Query != "" {
		v.Set("query", o.Query)
	}
	for k, vals := range o.Filters.Values() {
		for _, val := range vals {
			v.Add(k, val)
		}
	}
	for k, vals := range o.Extra {
		for _, val := range vals {
			v.Add(k, val)
		}
	}
	return v
}

// Paged returns options for the given page and size.
func Paged(page, size int, sort ...string) RequestOptions {
	return RequestOptions{Page: &page, Size: &size, Sort: sort}
}
