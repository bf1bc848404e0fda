// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package collection merges entities into ordered lists by identity.
package collection

import "blogdesk/internal/models"

// AddIfMissing returns existing with every candidate whose identity is not
// yet present prepended to it. Nil candidates, drafts and repeated ids are
// skipped. Kept candidates stay in argument order and existing keeps its
// order behind them.
//
// When no non-nil candidate is given, existing is returned as is.
func AddIfMissing[T models.Identifiable](existing []T, candidates ...*T) []T {
	present := make([]T, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			present = append(present, *c)
		}
	}
	if len(present) == 0 {
		return existing
	}

	seen := make(map[int64]struct{}, len(existing)+len(present))
	for _, e := range existing {
		if id, ok := e.Identity(); ok {
			seen[id] = struct{}{}
		}
	}

	var toAdd []T
	for _, c := range present {
		id, ok := c.Identity()
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		toAdd = append(toAdd, c)
	}

	result := make([]T, 0, len(toAdd)+len(existing))
	result = append(result, toAdd...)
	return append(result, existing...)
}
