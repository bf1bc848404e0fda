// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL is how long a stored value lives in Valkey.
	DefaultTTL = 30 * 24 * time.Hour

	// keyPrefix namespaces client keys in a shared Valkey.
	keyPrefix = "blogdesk:"
)

// ConnectValkey creates a Valkey client and verifies the connection with a ping.
func ConnectValkey(host, port, password string) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", host, port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Debug("valkey connected", "addr", addr)
	return client, nil
}

// Valkey is a Storage backed by a Valkey (Redis-compatible) server. Keys
// are scoped by profile so several API targets can share one server.
type Valkey struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewValkey returns a store for the given profile, e.g. "default".
func NewValkey(client *redis.Client, profile string) *Valkey {
	return &Valkey{
		client: client,
		prefix: keyPrefix + profile + ":",
		ttl:    DefaultTTL,
	}
}

func (v *Valkey) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := v.client.Get(ctx, v.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session get: %w", err)
	}
	return val, true, nil
}

// Set stores value and resets its TTL.
func (v *Valkey) Set(ctx context.Context, key, value string) error {
	if err := v.client.Set(ctx, v.prefix+key, value, v.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func (v *Valkey) Delete(ctx context.Context, key string) error {
	if err := v.client.Del(ctx, v.prefix+key).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
