// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// momentLayouts are tried in order when parsing a wire value. The API sends
// instants as RFC 3339 and calendar dates as YYYY-MM-DD.
var momentLayouts = []string{
	time.RFC3339Nano,
	time.DateOnly,
	"2006-01-02T15:04:05",
}

// Moment is a point in time that may have failed to parse. A Moment built
// from a malformed string is kept around as invalid instead of raising an
// error, so the caller can decide what to do with it (the codec drops it).
// Moments hold millisecond precision, the same as the wire format.
type Moment struct {
	t     time.Time
	valid bool
}

// MomentOf wraps t as a valid Moment, truncated to the millisecond.
func MomentOf(t time.Time) Moment {
	return Moment{t: t.Truncate(time.Millisecond), valid: true}
}

// ParseMoment parses s as an RFC 3339 instant or a calendar date.
// Date-only values are interpreted at midnight UTC. An unparseable string
// yields an invalid Moment.
func ParseMoment(s string) Moment {
	s = strings.TrimSpace(s)
	for _, layout := range momentLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return MomentOf(t)
		}
	}
	return Moment{}
}

// NewMoment returns a pointer to a valid Moment for t. Handy for filling
// optional Post fields.
func NewMoment(t time.Time) *Moment {
	m := MomentOf(t)
	return &m
}

// IsValid reports whether the moment holds a real point in time.
func (m Moment) IsValid() bool {
	return m.valid
}

// Time returns the underlying time. It is the zero time for an invalid moment.
func (m Moment) Time() time.Time {
	if !m.valid {
		return time.Time{}
	}
	return m.t
}

// Equal reports whether both moments are valid and denote the same instant,
// or both are invalid.
func (m Moment) Equal(o Moment) bool {
	if m.valid != o.valid {
		return false
	}
	return !m.valid || m.t.Equal(o.t)
}

// String renders the moment for logs and CLI output.
func (m Moment) String() string {
	if !m.valid {
		return "Invalid Date"
	}
	return m.t.Format(time.RFC3339)
}
