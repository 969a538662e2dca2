package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	licitadoc "github.com/licitadoc/licitadoc-go"
)

// Authenticate exchanges credentials for a bearer token, implementing
// licitadoc.Authenticator. The backend follows the OAuth2 password flow and
// expects form-encoded credentials under username/password.
//
// A 401 here means the credentials were rejected, not that a session
// expired, so the call is exempt from the adapter's teardown path and maps
// to [licitadoc.ErrInvalidCredentials] instead.
func (c *Client) Authenticate(ctx context.Context, identifier, secret string) (string, error) {
	form := url.Values{}
	form.Set("username", identifier)
	form.Set("password", secret)

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := c.postForm(ctx, "/auth/token", form, &out, true); err != nil {
		var se *licitadoc.StatusError
		if errors.As(err, &se) {
			switch se.StatusCode {
			case http.StatusBadRequest, http.StatusUnauthorized, http.StatusUnprocessableEntity:
				return "", licitadoc.ErrInvalidCredentials
			}
		}
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access token")
	}
	return out.AccessToken, nil
}

// RegisterInput is the sign-up payload: the first user account plus the
// company it creates.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	CompanyID string `json:"company_id,omitempty"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// Register creates a new user account. Like Authenticate, a 401 here is a
// caller-level rejection rather than an expired session.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	body, err := jsonBody(in)
	if err != nil {
		return err
	}
	return c.do(ctx, call{
		method:      http.MethodPost,
		path:        "/auth/register",
		body:        body,
		contentType: "application/json",
		noTeardown:  true,
	})
}
