// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package codec converts entities between their in-memory form and the JSON
// shape exchanged with the blog API. Only Post needs real work: its three
// temporal fields are Moments in memory and strings on the wire.
package codec

import (
	"time"

	"blogdesk/internal/models"
)

const (
	// InstantFormat matches what browsers emit for Date.toJSON: UTC with
	// millisecond precision.
	InstantFormat = "2006-01-02T15:04:05.000Z"

	// DateFormat is the calendar-date encoding used for publishedDate.
	DateFormat = time.DateOnly
)

// WirePost is the JSON representation of a post.
type WirePost struct {
	ID            *int64           `json:"id,omitempty"`
	Title         *string          `json:"title,omitempty"`
	Slug          *string          `json:"slug,omitempty"`
	Summary       *string          `json:"summary,omitempty"`
	Body          *string          `json:"body,omitempty"`
	CreatedAt     *string          `json:"createdAt,omitempty"`
	CreatedBy     *string          `json:"createdBy,omitempty"`
	PublishedDate *string          `json:"publishedDate,omitempty"`
	State         *int             `json:"state,omitempty"`
	Tags          *string          `json:"tags,omitempty"`
	UpdatedAt     *string          `json:"updatedAt,omitempty"`
	UpdatedBy     *string          `json:"updatedBy,omitempty"`
	Category      *models.Category `json:"category,omitempty"`
}

// EncodePost builds the outbound payload for p. The input is never
// modified. Moments that are absent or invalid are left out of the payload.
func EncodePost(p *models.Post) *WirePost {
	if p == nil {
		return nil
	}
	return &WirePost{
		ID:            p.ID,
		Title:         encodeTitle(p.Title),
		Slug:          p.Slug,
		Summary:       p.Summary,
		Body:          p.Body,
		CreatedAt:     encodeInstant(p.CreatedAt),
		CreatedBy:     p.CreatedBy,
		PublishedDate: encodeDate(p.PublishedDate),
		State:         p.State,
		Tags:          p.Tags,
		UpdatedAt:     encodeInstant(p.UpdatedAt),
		UpdatedBy:     p.UpdatedBy,
		Category:      p.Category.Clone(),
	}
}

// DecodePost converts a payload received from the API. Null or empty
// temporal fields become nil; malformed ones become invalid Moments.
// Decoding never fails.
func DecodePost(w *WirePost) *models.Post {
	if w == nil {
		return nil
	}
	return &models.Post{
		ID:            w.ID,
		Title:         decodeTitle(w.Title),
		Slug:          w.Slug,
		Summary:       w.Summary,
		Body:          w.Body,
		CreatedAt:     decodeMoment(w.CreatedAt),
		CreatedBy:     w.CreatedBy,
		PublishedDate: decodeMoment(w.PublishedDate),
		State:         w.State,
		Tags:          w.Tags,
		UpdatedAt:     decodeMoment(w.UpdatedAt),
		UpdatedBy:     w.UpdatedBy,
		Category:      w.Category,
	}
}

// DecodePosts applies DecodePost to every element, keeping order.
func DecodePosts(ws []WirePost) []models.Post {
	if ws == nil {
		return nil
	}
	posts := make([]models.Post, len(ws))
	for i := range ws {
		posts[i] = *DecodePost(&ws[i])
	}
	return posts
}

// EncodeCategory returns a copy of c ready to be sent.
func EncodeCategory(c *models.Category) *models.Category {
	return c.Clone()
}

// DecodeCategory is the identity conversion; it exists so both entity
// gateways share one shape.
func DecodeCategory(c *models.Category) *models.Category {
	return c
}

// encodeTitle leaves an empty title out of the payload so a merge-patch
// does not clear it.
func encodeTitle(title string) *string {
	if title == "" {
		return nil
	}
	return &title
}

func decodeTitle(title *string) string {
	if title == nil {
		return ""
	}
	return *title
}

func encodeInstant(m *models.Moment) *string {
	if m == nil || !m.IsValid() {
		return nil
	}
	s := m.Time().UTC().Format(InstantFormat)
	return &s
}

func encodeDate(m *models.Moment) *string {
	if m == nil || !m.IsValid() {
		return nil
	}
	s := m.Time().Format(DateFormat)
	return &s
}

func decodeMoment(s *string) *models.Moment {
	if s == nil || *s == "" {
		return nil
	}
	m := models.ParseMoment(*s)
	return &m
}
