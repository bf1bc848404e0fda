// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"net/url"
	"strconv"
	"strings"
)

// Filter operators understood by the backend's criteria endpoints. A filter
// is sent as "<field>.<op>=<value>", e.g. "title.contains=go".
const (
	OpEquals             = "equals"
	OpNotEquals          = "notEquals"
	OpIn                 = "in"
	OpNotIn              = "notIn"
	OpSpecified          = "specified"
	OpContains           = "contains"
	OpDoesNotContain     = "doesNotContain"
	OpGreaterThan        = "greaterThan"
	OpGreaterThanOrEqual = "greaterThanOrEqual"
	OpLessThan           = "lessThan"
	OpLessThanOrEqual    = "lessThanOrEqual"
)

// Criteria accumulates field filters for list and count calls.
// The zero value is an empty set of filters.
type Criteria struct {
	params url.Values
}

// Where adds a raw "<field>.<op>=<value>" filter and returns c for chaining.
func (c Criteria) Where(field, op, value string) Criteria {
	params := url.Values{}
	for k, v := range c.params {
		params[k] = append([]string(nil), v...)
	}
	params.Add(field+"."+op, value)
	return Criteria{params: params}
}

// Equals filters on exact match.
func (c Criteria) Equals(field, value string) Criteria {
	return c.Where(field, OpEquals, value)
}

// In filters on membership; values are joined with commas.
func (c Criteria) In(field string, values ...string) Criteria {
	return c.Where(field, OpIn, strings.Join(values, ","))
}

// Contains filters on substring match.
func (c Criteria) Contains(field, value string) Criteria {
	return c.Where(field, OpContains, value)
}

// Specified filters on presence (true) or absence (false) of a value.
func (c Criteria) Specified(field string, specified bool) Criteria {
	return c.Where(field, OpSpecified, strconv.FormatBool(specified))
}

// GreaterThan filters numbers, instants and dates.
func (c Criteria) GreaterThan(field, value string) Criteria {
	return c.Where(field, OpGreaterThan, value)
}

// LessThan filters numbers, instants and dates.
func (c Criteria) LessThan(field, value string) Criteria {
	return c.Where(field, OpLessThan, value)
}

// IDEquals is shorthand for an equality filter on a numeric field such as
// "id" or "categoryId".
func (c Criteria) IDEquals(field string, id int64) Criteria {
	return c.Where(field, OpEquals, strconv.FormatInt(id, 10))
}

// IsEmpty reports whether no filter has been added.
func (c Criteria) IsEmpty() bool {
	return len(c.params) == 0
}

// Values returns a copy of the encoded filters.
func (c Criteria) Values() url.Values {
	out := url.Values{}
	for k, v := range c.params {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// ParseFilter parses a "field.op=value" expression as typed on the command
// line. It returns false when the expression has no operator or value.
func ParseFilter(expr string) (field, op, value string, ok bool) {
	key, value, found := strings.Cut(expr, "=")
	if !found {
		return "", "", "", false
	}
	dot := strings.LastIndex(key, ".")
	if dot <= 0 || dot == len(key)-1 {
		return "", "", "", false
	}
	return key[:dot], key[dot+1:], value, true
}
