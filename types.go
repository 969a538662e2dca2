package licitadoc

import (
	"context"
	"encoding/json"
	"time"
)

// MembershipRole is the role an identity holds inside one organization.
// It is distinct from the platform role carried by the bearer token.
type MembershipRole string

const (
	// RoleMaster may manage the organization and invite members.
	RoleMaster MembershipRole = "MASTER"
	// RoleViewer has read-only access to the organization.
	RoleViewer MembershipRole = "VIEWER"
)

// Identity is the decoded claims of the current bearer token. The decode is
// unverified: treat every field as untrusted display and routing data only.
// Server-enforced authorization is re-validated on each call regardless of
// what the client decodes.
type Identity struct {
	// Subject is the login identifier (the user's e-mail).
	Subject string
	// Role is the coarse platform role, "admin" or "client".
	Role string
	// UserID is the stable account identifier.
	UserID string
	// ExpiresAt is the token expiry, zero when the token carries no exp
	// claim. An identity whose expiry lies in the past is invalid.
	ExpiresAt time.Time
}

// Organization is one tenant the identity may act on behalf of. The wire
// shape carries legacy aliases (razao_social vs name, status vs is_active);
// the aliases are reconciled once here, never at call sites.
type Organization struct {
	ID          string
	DisplayName string
	TradeName   string
	TaxID       string
	Role        MembershipRole
	Active      bool
	CreatedAt   time.Time
}

// UnmarshalJSON reconciles the legacy field aliases. Defaulting rules:
// razao_social wins over name, status wins over is_active, and an
// organization with neither flag is considered active.
func (o *Organization) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           string     `json:"id"`
		RazaoSocial  string     `json:"razao_social"`
		Name         string     `json:"name"`
		NomeFantasia string     `json:"nome_fantasia"`
		CNPJ         string     `json:"cnpj"`
		Role         string     `json:"role"`
		Status       *bool      `json:"status"`
		IsActive     *bool      `json:"is_active"`
		CreatedAt    *time.Time `json:"created_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	o.ID = raw.ID
	o.DisplayName = raw.RazaoSocial
	if o.DisplayName == "" {
		o.DisplayName = raw.Name
	}
	o.TradeName = raw.NomeFantasia
	o.TaxID = raw.CNPJ
	o.Role = MembershipRole(raw.Role)

	switch {
	case raw.Status != nil:
		o.Active = *raw.Status
	case raw.IsActive != nil:
		o.Active = *raw.IsActive
	default:
		o.Active = true
	}

	if raw.CreatedAt != nil {
		o.CreatedAt = *raw.CreatedAt
	}
	return nil
}

// Authenticator exchanges credentials for a bearer token. Implementations
// fail with [ErrInvalidCredentials] on bad credentials; any other failure is
// propagated unchanged.
type Authenticator interface {
	Authenticate(ctx context.Context, identifier, secret string) (string, error)
}

// OrganizationFetcher loads the organizations the current identity may act
// on behalf of. Failures wrap [ErrFetch].
type OrganizationFetcher interface {
	FetchOrganizations(ctx context.Context) ([]Organization, error)
}
