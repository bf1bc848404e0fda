// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"blogdesk/internal/models"
	"blogdesk/internal/slug"
)

// Validation limits for post fields.
const (
	maxTitleLen   = 300
	maxSlugLen    = slug.MaxLength
	maxSummaryLen = 1_000
	maxBodyLen    = 100_000
	maxTagsLen    = 500
)

// FieldError reports an invalid form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a post before it is sent and returns the first problem
// found as a *FieldError.
func Validate(p *models.Post) error {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return &FieldError{Field: "title", Message: "Title is required."}
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return &FieldError{Field: "title", Message: "Title is too long (max 300 characters)."}
	}
	if p.Slug != nil {
		if utf8.RuneCountInString(*p.Slug) > maxSlugLen {
			return &FieldError{Field: "slug", Message: "Slug is too long (max 300 characters)."}
		}
		if !slug.IsValid(*p.Slug) {
			return &FieldError{Field: "slug", Message: "Slug may only contain lowercase letters, digits and single hyphens."}
		}
	}
	if p.Summary != nil && utf8.RuneCountInString(*p.Summary) > maxSummaryLen {
		return &FieldError{Field: "summary", Message: "Summary is too long (max 1,000 characters)."}
	}
	if p.Body != nil && utf8.RuneCountInString(*p.Body) > maxBodyLen {
		return &FieldError{Field: "body", Message: "Body is too long (max 100,000 characters)."}
	}
	if p.Tags != nil && utf8.RuneCountInString(*p.Tags) > maxTagsLen {
		return &FieldError{Field: "tags", Message: "Tags are too long (max 500 characters)."}
	}
	if p.PublishedDate != nil && !p.PublishedDate.IsValid() {
		return &FieldError{Field: "publishedDate", Message: "Published date is not a valid date."}
	}
	return nil
}
