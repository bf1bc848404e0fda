// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the entities exchanged with the blog API and the
// identity rules used to compare them.
package models

// Identifiable is implemented by every entity with a server-assigned id.
// The boolean is false for drafts; two entities are the same entity only
// when both report an id and the ids are equal.
type Identifiable interface {
	Identity() (int64, bool)
}

// PostIdentifier returns the id of p, or false if p is a draft.
func PostIdentifier(p Post) (int64, bool) {
	if p.ID == nil {
		return 0, false
	}
	return *p.ID, true
}

// CategoryIdentifier returns the id of c, or false if c is a draft.
func CategoryIdentifier(c Category) (int64, bool) {
	if c.ID == nil {
		return 0, false
	}
	return *c.ID, true
}

// SameEntity reports whether a and b denote the same persisted entity.
func SameEntity(a, b Identifiable) bool {
	ida, oka := a.Identity()
	idb, okb := b.Identity()
	return oka && okb && ida == idb
}

// Ptr returns a pointer to v. Used to fill optional fields in literals.
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
