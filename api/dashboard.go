package api

import (
	"context"
	"net/url"
)

// ClientStats is the tenant dashboard summary.
type ClientStats struct {
	CompanyName string     `json:"company_name"`
	TotalDocs   int        `json:"total_docs"`
	DocsValid   int        `json:"docs_valid"`
	DocsExpired int        `json:"docs_expired"`
	RecentDocs  []Document `json:"recent_docs"`
}

// AdminDashboard is the platform-wide dashboard summary.
type AdminDashboard struct {
	TotalCompanies  int        `json:"total_companies"`
	TotalDocuments  int        `json:"total_documents"`
	TotalUsers      int        `json:"total_users"`
	RecentDocuments []Document `json:"recent_documents"`
	RecentCompanies []Company  `json:"recent_companies"`
}

// ClientStats fetches the tenant dashboard, scoped to companyID when set.
func (c *Client) ClientStats(ctx context.Context, companyID string) (*ClientStats, error) {
	query := url.Values{}
	if companyID != "" {
		query.Set("company_id", companyID)
	}
	var out ClientStats
	if err := c.get(ctx, "/dashboard/client/stats", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminDashboard fetches the platform dashboard. Admin-only server-side.
func (c *Client) AdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	var out AdminDashboard
	if err := c.get(ctx, "/dashboard/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
