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

// AccountFetcher loads the current account. A nil account with a nil error
// means nobody is signed in.
type AccountFetcher interface {
	Account(ctx context.Context) (*models.Account, error)
}

// AccountFeed broadcasts the signed-in account. New subscribers receive the
// latest snapshot immediately, if one was published, then every later one.
//
// Callbacks run synchronously on the publishing goroutine and must not call
// back into the feed.
type AccountFeed struct {
	mu      sync.Mutex
	latest  *models.Account
	known   bool
	nextID  int
	watches map[int]func(*models.Account)
}

// NewAccountFeed returns a feed with no snapshot yet.
func NewAccountFeed() *AccountFeed {
	return &AccountFeed{watches: make(map[int]func(*models.Account))}
}

// Subscribe registers fn and returns a function that removes it. The
// returned function is safe to call more than once.
func (f *AccountFeed) Subscribe(fn func(*models.Account)) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	f.watches[id] = fn
	if f.known {
		fn(f.latest)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.watches, id)
			f.mu.Unlock()
		})
	}
}

// Publish records acc as the latest snapshot and delivers it to every
// subscriber. nil means signed out.
func (f *AccountFeed) Publish(acc *models.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.latest = acc
	f.known = true
	for _, fn := range f.watches {
		fn(acc)
	}
}

// Latest returns the last published account and whether anything was
// published yet.
func (f *AccountFeed) Latest() (*models.Account, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest, f.known
}

// Refresh loads the account from src and publishes it.
func (f *AccountFeed) Refresh(ctx context.Context, src AccountFetcher) (*models.Account, error) {
	acc, err := src.Account(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh account: %w", err)
	}
	f.Publish(acc)
	return acc, nil
}
