// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"blogdesk/internal/layout"
	"blogdesk/internal/models"
)

type whoami struct {
	Version        string          `json:"version"`
	Account        *models.Account `json:"account"`
	Language       string          `json:"language"`
	InProduction   bool            `json:"inProduction"`
	OpenAPIEnabled bool            `json:"openAPIEnabled"`
	Profiles       []string        `json:"profiles"`
}

func newWhoamiCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account and the backend profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				if _, err := app.Feed.Refresh(ctx, app.Accounts); err != nil {
					return err
				}
				if err := app.Sidebar.LoadProfile(ctx, app.Profiles); err != nil {
					return err
				}
				lang, err := app.Navbar.Language(ctx, defaultLanguage(opts))
				if err != nil {
					return err
				}

				info := whoami{
					Version:        app.Navbar.Version(),
					Account:        app.Navbar.Account(),
					Language:       lang,
					InProduction:   app.Sidebar.InProduction(),
					OpenAPIEnabled: app.Sidebar.OpenAPIEnabled(),
					Profiles:       app.Sidebar.Profile().ActiveProfiles,
				}
				return out.Print(info, func(w io.Writer) error {
					return printWhoami(w, info)
				})
			})
		},
	}
}

func printWhoami(w io.Writer, info whoami) error {
	user := "not signed in"
	if info.Account != nil {
		user = info.Account.DisplayName()
		if info.Account.IsAdmin() {
			user += " (admin)"
		}
	}
	lines := []string{
		"account:  " + user,
		"language: " + info.Language,
		"profiles: " + strings.Join(info.Profiles, ", "),
	}
	if info.Version != "" {
		lines = append([]string{"version:  " + info.Version}, lines...)
	}
	if info.InProduction {
		lines = append(lines, "backend runs in production")
	}
	if info.OpenAPIEnabled {
		lines = append(lines, "API docs are enabled")
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func defaultLanguage(opts *RootOptions) string {
	if len(opts.Config.Languages) > 0 {
		return opts.Config.Languages[0]
	}
	return "en"
}

func newLoginCommand(opts *RootOptions) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a bearer token and show its account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return errors.New("--token is required")
			}
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				app.warnVolatile("the token")
				acc, err := app.Navbar.Login(ctx, token)
				if err != nil {
					return err
				}
				if acc == nil {
					_ = app.Navbar.Logout(ctx)
					return errors.New("login: token was rejected")
				}
				return out.Print(acc, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "signed in as %s\n", acc.DisplayName())
					return err
				})
			})
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "bearer token issued by the backend")
	return cmd
}

func newLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				if err := app.Navbar.Logout(ctx); err != nil {
					return err
				}
				return out.Print(map[string]bool{"signedOut": true}, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, "signed out")
					return err
				})
			})
		},
	}
}

func newLanguageCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "language [tag]",
		Short: "Show or change the interface language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, app *App, out *OutputFormatter) error {
				if len(args) == 1 {
					app.warnVolatile("the language")
					if err := app.Navbar.ChangeLanguage(ctx, args[0]); err != nil {
						return err
					}
				}
				lang, err := app.Navbar.Language(ctx, defaultLanguage(opts))
				if err != nil {
					return err
				}
				return out.Print(map[string]string{"language": lang}, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, lang)
					return err
				})
			})
		},
	}
}

func newVersionCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := layout.FormatVersion(opts.Config.Version)
			return opts.formatter(cmd).Print(map[string]string{"version": v}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, v)
				return err
			})
		},
	}
}
