// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session keeps the small amount of client state that outlives a
// single command: the bearer token and the preferred locale. Values live in
// memory, in a per-profile file or in Valkey, behind the same Storage
// interface.
package session

import (
	"context"
	"fmt"
	"sync"
)

const (
	// TokenKey holds the bearer token returned by the login endpoint.
	TokenKey = "authenticationToken"

	// LocaleKey holds the language chosen in the navbar.
	LocaleKey = "locale"
)

// Storage is a string key/value store. Get reports ok=false for keys that
// were never set or have expired.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Memory is a Storage for a single process.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// TokenSource reads the bearer token from a Storage. It satisfies
// api.TokenSource; a missing token yields "" so requests go out anonymous.
type TokenSource struct {
	Storage Storage
}

// Token returns the stored bearer token.
func (ts TokenSource) Token(ctx context.Context) (string, error) {
	v, _, err := ts.Storage.Get(ctx, TokenKey)
	if err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	return v, nil
}

// SaveToken stores token, or removes the stored one when token is empty.
func SaveToken(ctx context.Context, s Storage, token string) error {
	if token == "" {
		return s.Delete(ctx, TokenKey)
	}
	return s.Set(ctx, TokenKey, token)
}
