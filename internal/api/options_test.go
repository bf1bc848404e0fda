// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"net/url"
	"testing"
)

func TestRequestOptionsValues(t *testing.T) {
	page, size := 2, 50
	opts := RequestOptions{
		Page:    &page,
		Size:    &size,
		Sort:    []string{"title,asc", "id"},
		Query:   "golang",
		Filters: Criteria{}.Contains("title", "go").Specified("slug", true),
		Extra:   url.Values{"eagerload": {"true"}},
	}

	got := opts.Values().Encode()
	want := "eagerload=true&page=2&query=golang&size=50&slug.specified=true&sort=title%2Casc&sort=id&title.contains=go"
	if got != want {
		t.Errorf("Values() =\n %s\nwant\n %s", got, want)
	}
}

func TestRequestOptionsZero(t *testing.T) {
	if got := (RequestOptions{}).Values().Encode(); got != "" {
		t.Errorf("zero options encoded to %q", got)
	}
}

// TestCriteriaImmutable verifies that chaining never modifies the receiver,
// so a base criteria can be shared between calls.
func TestCriteriaImmutable(t *testing.T) {
	base := Criteria{}.Equals("state", "1")
	a := base.Contains("title", "a")
	b := base.Contains("title", "b")

	if base.Values().Get("title.contains") != "" {
		t.Error("base criteria was mutated")
	}
	if a.Values().Get("title.contains") != "a" || b.Values().Get("title.contains") != "b" {
		t.Errorf("a=%v b=%v", a.Values(), b.Values())
	}
	if !(Criteria{}).IsEmpty() || base.IsEmpty() {
		t.Error("IsEmpty mismatch")
	}
}

func TestCriteriaHelpers(t *testing.T) {
	c := Criteria{}.
		In("title", "AAA", "BBB").
		IDEquals("categoryId", 7).
		GreaterThan("id", "5").
		LessThan("publishedDate", "2024-01-01")

	v := c.Values()
	checks := map[string]string{
		"title.in":               "AAA,BBB",
		"categoryId.equals":      "7",
		"id.greaterThan":         "5",
		"publishedDate.lessThan": "2024-01-01",
	}
	for k, want := range checks {
		if got := v.Get(k); got != want {
			t.Errorf("%s = %q, want %q", k, got, want)
		}
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		expr             string
		field, op, value string
		ok               bool
	}{
		{"title.contains=go", "title", "contains", "go", true},
		{"category.id.equals=3", "category.id", "equals", "3", true},
		{"slug.specified=", "slug", "specified", "", true},
		{"title=go", "", "", "", false},
		{"title.contains", "", "", "", false},
		{".equals=1", "", "", "", false},
		{"title.=1", "", "", "", false},
	}
	for _, tt := range tests {
		field, op, value, ok := ParseFilter(tt.expr)
		if ok != tt.ok || field != tt.field || op != tt.op || value != tt.value {
			t.Errorf("ParseFilter(%q) = (%q, %q, %q, %v), want (%q, %q, %q, %v)",
				tt.expr, field, op, value, ok, tt.field, tt.op, tt.value, tt.ok)
		}
	}
}

func TestParseLinks(t *testing.T) {
	header := `<http://localhost/api/posts?sort=id,desc&page=0&size=20>; rel="first", ` +
		`<http://localhost/api/posts?sort=id,desc&page=3&size=20>; rel="prev", ` +
		`<http://localhost/api/posts?sort=id,desc&page=5&size=20>; rel="next", ` +
		`<http://localhost/api/posts?sort=id,desc&page=9&size=20>; rel="last"`

	links := ParseLinks(header)
	want := map[string]int{"first": 0, "prev": 3, "next": 5, "last": 9}
	for rel, page := range want {
		if links[rel] != page {
			t.Errorf("links[%q] = %d, want %d", rel, links[rel], page)
		}
	}
	if len(links) != 4 {
		t.Errorf("len(links) = %d", len(links))
	}

	if got := ParseLinks(""); len(got) != 0 {
		t.Errorf("empty header gave %v", got)
	}
	if got := ParseLinks(`<http://x/api/posts>; rel="next"`); len(got) != 0 {
		t.Errorf("link without page gave %v", got)
	}
}
