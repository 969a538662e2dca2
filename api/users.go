package api

import (
	"context"
	"fmt"

	licitadoc "github.com/licitadoc/licitadoc-go"
)

// Profile is the authenticated user's account record.
type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
	Role     string `json:"role"`
}

// Me fetches the current user's profile.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.get(ctx, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchOrganizations loads the organizations linked to the current
// identity, implementing licitadoc.OrganizationFetcher. Failures wrap
// licitadoc.ErrFetch so passive refreshers can treat them uniformly.
func (c *Client) FetchOrganizations(ctx context.Context) ([]licitadoc.Organization, error) {
	var out []licitadoc.Organization
	if err := c.get(ctx, "/users/me/companies", nil, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", licitadoc.ErrFetch, err)
	}
	return out, nil
}
