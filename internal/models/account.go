// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "slices"

// Authorities granted by the blog backend.
const (
	AuthorityAdmin = "ROLE_ADMIN"
	AuthorityUser  = "ROLE_USER"
)

// Account is the authenticated user as reported by GET /api/account.
type Account struct {
	Login       string   `json:"login"`
	FirstName   *string  `json:"firstName,omitempty"`
	LastName    *string  `json:"lastName,omitempty"`
	Email       string   `json:"email"`
	Activated   bool     `json:"activated"`
	LangKey     string   `json:"langKey"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Authorities []string `json:"authorities"`
}

// HasAnyAuthority returns true if the account holds at least one of the
// given authorities.
func (a *Account) HasAnyAuthority(authorities ...string) bool {
	if a == nil {
		return false
	}
	for _, want := range authorities {
		if slices.Contains(a.Authorities, want) {
			return true
		}
	}
	return false
}

// IsAdmin returns true if the account has the admin authority.
func (a *Account) IsAdmin() bool {
	return a.HasAnyAuthority(AuthorityAdmin)
}

// DisplayName prefers "First Last", falling back to the login.
func (a *Account) DisplayName() string {
	if a == nil {
		return ""
	}
	var name string
	if a.FirstName != nil {
		name = *a.FirstName
	}
	if a.LastName != nil {
		if name != "" {
			name += " "
		}
		name += *a.LastName
	}
	if name == "" {
		return a.Login
	}
	return name
}

// ProfileInfo describes the server deployment, as shown in the sidebar.
type ProfileInfo struct {
	ActiveProfiles []string
	RibbonEnv      string
	InProduction   bool
	OpenAPIEnabled bool
}
