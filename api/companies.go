package api

import (
	"context"
	"net/http"
	"time"

	licitadoc "github.com/licitadoc/licitadoc-go"
)

// Company is the full company record as the admin endpoints return it,
// including the onboarding flags.
type Company struct {
	ID             string    `json:"id"`
	TaxID          string    `json:"cnpj"`
	LegalName      string    `json:"razao_social"`
	TradeName      string    `json:"nome_fantasia,omitempty"`
	Email          string    `json:"email_corporativo,omitempty"`
	Phone          string    `json:"telefone,omitempty"`
	ContactName    string    `json:"responsavel_nome,omitempty"`
	City           string    `json:"cidade,omitempty"`
	State          string    `json:"estado,omitempty"`
	Active         bool      `json:"is_active"`
	ContractSigned bool      `json:"is_contract_signed"`
	PaymentActive  bool      `json:"is_payment_active"`
	AdminVerified  bool      `json:"is_admin_verified"`
	CreatedAt      time.Time `json:"created_at"`
}

// CompanyUpdate is the change set for one company. Nil fields are left
// untouched server-side.
type CompanyUpdate struct {
	LegalName      *string `json:"razao_social,omitempty"`
	TradeName      *string `json:"nome_fantasia,omitempty"`
	Email          *string `json:"email_corporativo,omitempty"`
	Phone          *string `json:"telefone,omitempty"`
	ContactName    *string `json:"responsavel_nome,omitempty"`
	PostalCode     *string `json:"cep,omitempty"`
	Street         *string `json:"logradouro,omitempty"`
	Number         *string `json:"numero,omitempty"`
	Complement     *string `json:"complemento,omitempty"`
	District       *string `json:"bairro,omitempty"`
	City           *string `json:"cidade,omitempty"`
	State          *string `json:"estado,omitempty"`
	ContractSigned *bool   `json:"is_contract_signed,omitempty"`
	PaymentActive  *bool   `json:"is_payment_active,omitempty"`
	AdminVerified  *bool   `json:"is_admin_verified,omitempty"`
}

// Member is one user attached to a company.
type Member struct {
	UserID   string                   `json:"user_id"`
	Name     string                   `json:"name"`
	Email    string                   `json:"email"`
	Role     licitadoc.MembershipRole `json:"role"`
	Status   bool                     `json:"status"`
	JoinedAt time.Time                `json:"joined_at"`
}

// MemberInvite adds a user to a company by e-mail.
type MemberInvite struct {
	Email string                   `json:"email"`
	Role  licitadoc.MembershipRole `json:"role"`
}

// MemberInviteResult is the invite response; Message carries the
// user-facing feedback (new account vs existing account attached).
type MemberInviteResult struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

// Companies lists every company. Admin-only server-side.
func (c *Client) Companies(ctx context.Context) ([]Company, error) {
	var out []Company
	if err := c.get(ctx, "/companies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Company fetches a single company.
func (c *Client) Company(ctx context.Context, id string) (*Company, error) {
	var out Company
	if err := c.get(ctx, "/companies/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCompany applies a change set to one company.
func (c *Client) UpdateCompany(ctx context.Context, id string, update CompanyUpdate) (*Company, error) {
	var out Company
	if err := c.putJSON(ctx, "/companies/"+id, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Members lists a company's team.
func (c *Client) Members(ctx context.Context, companyID string) ([]Member, error) {
	var out []Member
	if err := c.get(ctx, "/companies/"+companyID+"/members", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InviteMember adds a member to a company.
func (c *Client) InviteMember(ctx context.Context, companyID string, invite MemberInvite) (*MemberInviteResult, error) {
	var out MemberInviteResult
	body, err := jsonBody(invite)
	if err != nil {
		return nil, err
	}
	err = c.do(ctx, call{
		method:      http.MethodPost,
		path:        "/companies/" + companyID + "/members",
		body:        body,
		contentType: "application/json",
		out:         &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SignContract marks the onboarding contract step done. The product
// simulates the signing flow client-side; the only durable effect is this
// flag flip on the company record.
func (c *Client) SignContract(ctx context.Context, companyID string) (*Company, error) {
	signed := true
	return c.UpdateCompany(ctx, companyID, CompanyUpdate{ContractSigned: &signed})
}

// ActivatePayment marks the onboarding payment step done. Like the contract
// step, payment itself is simulated; only the flag is persisted.
func (c *Client) ActivatePayment(ctx context.Context, companyID string) (*Company, error) {
	active := true
	return c.UpdateCompany(ctx, companyID, CompanyUpdate{PaymentActive: &active})
}
