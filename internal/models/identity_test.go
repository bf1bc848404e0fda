// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "testing"

func TestPostIdentifier(t *testing.T) {
	if _, ok := PostIdentifier(Post{Title: "draft"}); ok {
		t.Error("draft post should have no identity")
	}
	id, ok := PostIdentifier(Post{ID: Ptr[int64](42)})
	if !ok || id != 42 {
		t.Errorf("PostIdentifier = (%d, %v), want (42, true)", id, ok)
	}
}

func TestCategoryIdentifier(t *testing.T) {
	if _, ok := CategoryIdentifier(Category{Name: Ptr("Tech")}); ok {
		t.Error("draft category should have no identity")
	}
	id, ok := Category{ID: Ptr[int64](7)}.Identity()
	if !ok || id != 7 {
		t.Errorf("Identity = (%d, %v), want (7, true)", id, ok)
	}
}

// TestSameEntity verifies that identity ignores every field but the id,
// and that drafts never match anything, not even themselves.
func TestSameEntity(t *testing.T) {
	tests := []struct {
		name string
		a, b Identifiable
		want bool
	}{
		{name: "same id different names", a: Category{ID: Ptr[int64](1), Name: Ptr("Tech")}, b: Category{ID: Ptr[int64](1), Name: Ptr("Life")}, want: true},
		{name: "different ids", a: Category{ID: Ptr[int64](1)}, b: Category{ID: Ptr[int64](2)}, want: false},
		{name: "draft vs persisted", a: Category{}, b: Category{ID: Ptr[int64](1)}, want: false},
		{name: "two drafts", a: Post{Title: "a"}, b: Post{Title: "a"}, want: false},
		{name: "posts by id", a: Post{ID: Ptr[int64](3), Title: "old"}, b: Post{ID: Ptr[int64](3), Title: "new"}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameEntity(tt.a, tt.b); got != tt.want {
				t.Errorf("SameEntity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategoryCloneIsDeep(t *testing.T) {
	orig := &Category{ID: Ptr[int64](1), Name: Ptr("Tech"), Image: []byte{1, 2, 3}}
	cp := orig.Clone()
	*cp.Name = "Life"
	cp.Image[0] = 9
	if *orig.Name != "Tech" || orig.Image[0] != 1 {
		t.Errorf("Clone shares memory with original: %+v", orig)
	}
	if (*Category)(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}
