// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package gateway

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"blogdesk/internal/api"
	"blogdesk/internal/models"
)

// AccountService reads the authenticated account.
type AccountService struct {
	client *api.Client
	url    string
}

// NewAccountService returns the gateway for /api/account.
func NewAccountService(client *api.Client) *AccountService {
	return &AccountService{client: client, url: client.Endpoint("api/account")}
}

// Account returns the current account, or nil when the caller is not
// authenticated.
func (s *AccountService) Account(ctx context.Context) (*models.Account, error) {
	var acc models.Account
	if _, err := s.client.Get(ctx, s.url, nil, &acc); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch account: %w", err)
	}
	return &acc, nil
}

// ProfileService reads deployment information from /management/info.
type ProfileService struct {
	client *api.Client
	url    string
}

// NewProfileService returns the gateway for /management/info.
func NewProfileService(client *api.Client) *ProfileService {
	return &ProfileService{client: client, url: client.Endpoint("management/info")}
}

type infoResponse struct {
	ActiveProfiles          []string `json:"activeProfiles"`
	DisplayRibbonOnProfiles string   `json:"display-ribbon-on-profiles"`
}

// Info fetches the active profiles and derives the sidebar flags.
func (s *ProfileService) Info(ctx context.Context) (*models.ProfileInfo, error) {
	var resp infoResponse
	if _, err := s.client.Get(ctx, s.url, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch profile info: %w", err)
	}

	info := &models.ProfileInfo{
		ActiveProfiles: resp.ActiveProfiles,
		InProduction:   slices.Contains(resp.ActiveProfiles, "prod"),
		OpenAPIEnabled: slices.Contains(resp.ActiveProfiles, "api-docs"),
	}
	for _, p := range strings.Split(resp.DisplayRibbonOnProfiles, ",") {
		p = strings.TrimSpace(p)
		if p != "" && slices.Contains(resp.ActiveProfiles, p) {
			info.RibbonEnv = p
			break
		}
	}
	return info, nil
}
