// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"

	"blogdesk/internal/api"
	"blogdesk/internal/config"
	"blogdesk/internal/editor"
	"blogdesk/internal/gateway"
	"blogdesk/internal/layout"
	"blogdesk/internal/session"
)

// App wires the gateways, session storage and chrome for one command run.
type App struct {
	cfg    *config.Config
	store  session.Storage
	valkey *redis.Client

	Posts      *gateway.PostService
	Categories *gateway.CategoryService
	Accounts   *gateway.AccountService
	Profiles   *gateway.ProfileService
	Editor     *editor.Editor

	Feed    *layout.AccountFeed
	State   *layout.State
	Navbar  *layout.Navbar
	Sidebar *layout.Sidebar
}

// NewApp connects to session storage and builds the API client.
// BLOGDESK_TOKEN, when set, is stored as the session token so later runs
// against a persistent backend keep using it.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	switch cfg.SessionBackend {
	case config.SessionValkey:
		client, err := session.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return nil, fmt.Errorf("session storage: %w", err)
		}
		app.valkey = client
		app.store = session.NewValkey(client, cfg.Profile)
	case config.SessionFile:
		dir, err := cfg.SessionDirectory()
		if err != nil {
			return nil, err
		}
		app.store = session.NewFile(dir, cfg.Profile)
	default:
		app.store = session.NewMemory()
	}

	if cfg.Token != "" {
		if err := session.SaveToken(ctx, app.store, cfg.Token); err != nil {
			app.Close()
			return nil, err
		}
	}

	client, err := api.NewClient(cfg.APIURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		api.WithTokenSource(session.TokenSource{Storage: app.store}),
		api.WithLogger(slog.Default()),
	)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Posts = gateway.NewPostService(client)
	app.Categories = gateway.NewCategoryService(client)
	app.Accounts = gateway.NewAccountService(client)
	app.Profiles = gateway.NewProfileService(client)
	app.Editor = editor.New(app.Posts, app.Categories)

	var langs []language.Tag
	for _, l := range cfg.Languages {
		tag, err := language.Parse(l)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("configured language %q: %w", l, err)
		}
		langs = append(langs, tag)
	}

	app.Feed = layout.NewAccountFeed()
	app.State = layout.NewState()
	app.Navbar = layout.NewNavbar(app.State, app.Feed, app.store, layout.NavbarOptions{
		Version:   cfg.Version,
		Languages: langs,
		Accounts:  app.Accounts,
	})
	app.Sidebar = layout.NewSidebar(app.State, app.Feed)
	return app, nil
}

// Persistent reports whether session values outlive this process.
func (a *App) Persistent() bool {
	return a.cfg.SessionBackend != config.SessionMemory
}

// warnVolatile logs when a command stores session state that the memory
// backend will drop on exit.
func (a *App) warnVolatile(what string) {
	if !a.Persistent() {
		slog.Warn("session backend is memory; "+what+" is not kept after this command",
			"backend", a.cfg.SessionBackend)
	}
}

// Close releases the Valkey connection and detaches the chrome.
func (a *App) Close() {
	if a.Navbar != nil {
		a.Navbar.Close()
	}
	if a.Sidebar != nil {
		a.Sidebar.Close()
	}
	if a.valkey != nil {
		if err := a.valkey.Close(); err != nil {
			slog.Warn("close valkey", "error", err)
		}
	}
}
