// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Post is a blog post as the admin client sees it. Temporal fields hold
// Moments; their string encoding lives in the codec package.
//
// Title is mandatory for persisted posts but may be empty while a draft is
// being filled in. State is an opaque status code owned by the server.
type Post struct {
	ID            *int64
	Title         string
	Slug          *string
	Summary       *string
	Body          *string
	CreatedAt     *Moment
	CreatedBy     *string
	PublishedDate *Moment
	State         *int
	Tags          *string
	UpdatedAt     *Moment
	UpdatedBy     *string

	// Category is a snapshot of the related category, not a live reference.
	Category *Category
}

// Identity returns the post id if it has been persisted.
func (p Post) Identity() (int64, bool) {
	return PostIdentifier(p)
}

// IsNew reports whether the post is a draft that was never saved.
func (p Post) IsNew() bool {
	return p.ID == nil
}
