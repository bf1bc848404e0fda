// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import (
	"context"
	"fmt"
	"sync"

	"blogdesk/internal/models"
)

// ProfileFetcher loads deployment information.
type ProfileFetcher interface {
	Info(ctx context.Context) (*models.ProfileInfo, error)
}

// Sidebar is the side navigation. It shows admin links depending on the
// account and the backend's profile.
type Sidebar struct {
	state *State
	feed  *AccountFeed

	mu      sync.RWMutex
	account *models.Account
	profile models.ProfileInfo
	stop    func()
}

// NewSidebar builds a sidebar that follows feed until Close is called.
func NewSidebar(state *State, feed *AccountFeed) *Sidebar {
	s := &Sidebar{state: state, feed: feed}
	s.stop = feed.Subscribe(func(acc *models.Account) {
		s.mu.Lock()
		s.account = acc
		s.mu.Unlock()
	})
	return s
}

// LoadProfile fetches the profile info once and keeps it.
func (s *Sidebar) LoadProfile(ctx context.Context, src ProfileFetcher) error {
	info, err := src.Info(ctx)
	if err != nil {
		return fmt.Errorf("sidebar profile: %w", err)
	}
	s.mu.Lock()
	s.profile = *info
	s.mu.Unlock()
	return nil
}

func (s *Sidebar) Account() *models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

// InProduction reports whether the backend runs the prod profile.
func (s *Sidebar) InProduction() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.InProduction
}

// OpenAPIEnabled reports whether the API docs profile is active.
func (s *Sidebar) OpenAPIEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.OpenAPIEnabled
}

// Profile returns a copy of the loaded profile info.
func (s *Sidebar) Profile() models.ProfileInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.profile
	p.ActiveProfiles = append([]string(nil), s.profile.ActiveProfiles...)
	return p
}

func (s *Sidebar) ToggleSidebar() { s.state.ToggleSidebar() }
func (s *Sidebar) CollapseNavbar() { s.state.CollapseNavbar() }

// Close stops following the account feed.
func (s *Sidebar) Close() { s.stop() }
