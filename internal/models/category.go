// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Category groups posts. Posts can have at most one category assigned, and
// carry a full copy of it rather than a bare id.
// Category has no temporal fields, so its wire shape is its domain shape:
// Image travels as a base64 string next to ImageContentType.
type Category struct {
	ID               *int64  `json:"id,omitempty"`
	Name             *string `json:"name,omitempty"`
	Slug             *string `json:"slug,omitempty"`
	Description      *string `json:"description,omitempty"`
	ImageContentType *string `json:"imageContentType,omitempty"`
	Image            []byte  `json:"image,omitempty"`
}

// Identity returns the category id if it has been persisted.
func (c Category) Identity() (int64, bool) {
	return CategoryIdentifier(c)
}

// IsNew reports whether the category is a draft that was never saved.
func (c Category) IsNew() bool {
	return c.ID == nil
}

// Clone returns a deep copy of the category.
func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}
	cp := *c
	cp.ID = clonePtr(c.ID)
	cp.Name = clonePtr(c.Name)
	cp.Slug = clonePtr(c.Slug)
	cp.Description = clonePtr(c.Description)
	cp.ImageContentType = clonePtr(c.ImageContentType)
	if c.Image != nil {
		cp.Image = append([]byte(nil), c.Image...)
	}
	return &cp
}
