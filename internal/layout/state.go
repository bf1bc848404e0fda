// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package layout holds the navigation chrome around the entity screens:
// collapse and pin toggles, the navbar and the sidebar. The account they
// show arrives through an AccountFeed.
package layout

import "sync"

// State is the shared toggle state of the navbar and sidebar. The navbar
// starts collapsed; the sidebar starts closed and unpinned.
type State struct {
	mu              sync.RWMutex
	navbarCollapsed bool
	sidebarOpen     bool
	sidebarPinned   bool
}

// NewState returns the initial layout.
func NewState() *State {
	return &State{navbarCollapsed: true}
}

func (s *State) IsNavbarCollapsed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.navbarCollapsed
}

// CollapseNavbar collapses the navbar. It is a no-op when already collapsed.
func (s *State) CollapseNavbar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navbarCollapsed = true
}

func (s *State) ToggleNavbar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navbarCollapsed = !s.navbarCollapsed
}

func (s *State) IsSidebarOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarOpen
}

func (s *State) ToggleSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarOpen = !s.sidebarOpen
}

func (s *State) IsSidebarPinned() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarPinned
}

func (s *State) ToggleSidebarPin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarPinned = !s.sidebarPinned
}
