// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"blogdesk/internal/models"
	"blogdesk/internal/session"
)

// ErrUnsupportedLanguage is returned by ChangeLanguage for tags outside the
// configured language list.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// FormatVersion renders a build version for display. A leading "v" is
// added unless the version already starts with one, in either case.
func FormatVersion(version string) string {
	if version == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(version), "v") {
		return version
	}
	return "v" + version
}

// NavbarOptions configure a Navbar.
type NavbarOptions struct {
	Version   string
	Languages []language.Tag // empty accepts any well-formed tag
	Accounts  AccountFetcher // used by Login
}

// Navbar is the top bar: version label, language switch and the
// sign-in/sign-out actions.
type Navbar struct {
	state    *State
	feed     *AccountFeed
	store    session.Storage
	accounts AccountFetcher
	version  string
	langs    []language.Tag
	matcher  language.Matcher

	mu      sync.RWMutex
	account *models.Account
	stop    func()
}

// NewNavbar builds a navbar that follows feed until Close is called.
func NewNavbar(state *State, feed *AccountFeed, store session.Storage, opts NavbarOptions) *Navbar {
	n := &Navbar{
		state:    state,
		feed:     feed,
		store:    store,
		accounts: opts.Accounts,
		version:  FormatVersion(opts.Version),
		langs:    opts.Languages,
	}
	if len(n.langs) > 0 {
		n.matcher = language.NewMatcher(n.langs)
	}
	n.stop = feed.Subscribe(n.setAccount)
	return n
}

func (n *Navbar) setAccount(acc *models.Account) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.account = acc
}

// Version returns the display version, e.g. "v1.2.0".
func (n *Navbar) Version() string { return n.version }

// Account returns the last account seen on the feed, nil when signed out.
func (n *Navbar) Account() *models.Account {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.account
}

// Languages lists the selectable languages.
func (n *Navbar) Languages() []language.Tag { return n.langs }

// ChangeLanguage validates key as a BCP 47 tag and stores it under the
// session locale key.
func (n *Navbar) ChangeLanguage(ctx context.Context, key string) error {
	tag, err := language.Parse(key)
	if err != nil {
		return fmt.Errorf("change language %q: %w", key, err)
	}
	if n.matcher != nil {
		if _, _, conf := n.matcher.Match(tag); conf != language.Exact {
			return fmt.Errorf("change language %q: %w", key, ErrUnsupportedLanguage)
		}
	}
	if err := n.store.Set(ctx, session.LocaleKey, tag.String()); err != nil {
		return fmt.Errorf("change language: %w", err)
	}
	return nil
}

// Language returns the stored locale, or fallback when none was chosen.
func (n *Navbar) Language(ctx context.Context, fallback string) (string, error) {
	v, ok, err := n.store.Get(ctx, session.LocaleKey)
	if err != nil {
		return "", fmt.Errorf("read language: %w", err)
	}
	if !ok {
		return fallback, nil
	}
	return v, nil
}

// Login stores token and publishes the account it belongs to.
func (n *Navbar) Login(ctx context.Context, token string) (*models.Account, error) {
	if n.accounts == nil {
		return nil, errors.New("login: no account source configured")
	}
	if err := session.SaveToken(ctx, n.store, token); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	acc, err := n.feed.Refresh(ctx, n.accounts)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return acc, nil
}

// Logout collapses the navbar, forgets the token and publishes the
// signed-out state.
func (n *Navbar) Logout(ctx context.Context) error {
	n.state.CollapseNavbar()
	if err := session.SaveToken(ctx, n.store, ""); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	n.feed.Publish(nil)
	return nil
}

func (n *Navbar) IsNavbarCollapsed() bool { return n.state.IsNavbarCollapsed() }
func (n *Navbar) CollapseNavbar() { n.state.CollapseNavbar() }
func (n *Navbar) ToggleNavbar() { n.state.ToggleNavbar() }
func (n *Navbar) ToggleSidebar() { n.state.ToggleSidebar() }
func (n *Navbar) ToggleSidebarPin() { n.state.ToggleSidebarPin() }

// Close stops following the account feed.
func (n *Navbar) Close() { n.stop() }
