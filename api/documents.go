package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// Document status values as the backend reports them.
const (
	DocumentStatusValid   = "valid"
	DocumentStatusWarning = "warning"
	DocumentStatusExpired = "expired"
)

// Document is the unified record covering both legacy uploads and
// structured certificates from the typed catalog.
type Document struct {
	ID                 string     `json:"id"`
	Filename           string     `json:"filename"`
	Title              string     `json:"title,omitempty"`
	Status             string     `json:"status"`
	ExpirationDate     *time.Time `json:"expiration_date,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	Structured         bool       `json:"is_structured"`
	TypeID             string     `json:"type_id,omitempty"`
	CategoryID         string     `json:"category_id,omitempty"`
	TypeName           string     `json:"type_name,omitempty"`
	CategoryName       string     `json:"category_name,omitempty"`
	AuthenticationCode string     `json:"authentication_code,omitempty"`
}

// DisplayName prefers the human title over the raw filename.
func (d Document) DisplayName() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Filename
}

// DocumentType is one entry of the typed catalog.
type DocumentType struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Slug                string `json:"slug"`
	ValidityDaysDefault int    `json:"validity_days_default"`
	Description         string `json:"description,omitempty"`
}

// DocumentCategory groups catalog types, ordered for display.
type DocumentCategory struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Slug  string         `json:"slug"`
	Order int            `json:"order"`
	Types []DocumentType `json:"types"`
}

// DocumentCategoryInput creates or updates a catalog category. Pointer
// fields are optional on update.
type DocumentCategoryInput struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Order int    `json:"order"`
}

// DocumentTypeInput creates or updates a catalog type.
type DocumentTypeInput struct {
	Name                string `json:"name"`
	Slug                string `json:"slug"`
	ValidityDaysDefault int    `json:"validity_days_default"`
	Description         string `json:"description,omitempty"`
	CategoryID          string `json:"category_id"`
}

// UploadInput is one document upload. TargetCompanyID is required; the
// remaining metadata is optional. A TypeID routes the file into the
// structured certificate vault.
type UploadInput struct {
	Filename           string
	Content            io.Reader
	TargetCompanyID    string
	Title              string
	TypeID             string
	AuthenticationCode string
	ExpirationDate     string
}

// Documents lists documents visible to the caller. companyID filters to one
// company (admin use); empty lists the caller's own.
func (c *Client) Documents(ctx context.Context, companyID string) ([]Document, error) {
	query := url.Values{}
	if companyID != "" {
		query.Set("company_id", companyID)
	}
	var out []Document
	if err := c.get(ctx, "/documents/", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Catalog fetches the full category/type catalog used to populate upload
// forms and organize the vault.
func (c *Client) Catalog(ctx context.Context) ([]DocumentCategory, error) {
	var out []DocumentCategory
	if err := c.get(ctx, "/documents/types", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upload sends one document as multipart form data.
func (c *Client) Upload(ctx context.Context, in UploadInput) (*Document, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", in.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, in.Content); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"target_company_id":   in.TargetCompanyID,
		"title":               in.Title,
		"type_id":             in.TypeID,
		"authentication_code": in.AuthenticationCode,
		"expiration_date":     in.ExpirationDate,
	}
	for name, value := range fields {
		if value == "" && name != "target_company_id" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	var out Document
	err = c.do(ctx, call{
		method:      http.MethodPost,
		path:        "/documents/upload",
		body:        &buf,
		contentType: writer.FormDataContentType(),
		out:         &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Download fetches the raw file bytes for one document.
func (c *Client) Download(ctx context.Context, documentID string) ([]byte, error) {
	var data []byte
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/documents/" + documentID + "/download",
		rawOut: &data,
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// CreateCategory adds a catalog category.
func (c *Client) CreateCategory(ctx context.Context, in DocumentCategoryInput) (*DocumentCategory, error) {
	var out DocumentCategory
	if err := c.postJSON(ctx, "/documents/categories", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory changes a catalog category.
func (c *Client) UpdateCategory(ctx context.Context, id string, in DocumentCategoryInput) (*DocumentCategory, error) {
	var out DocumentCategory
	if err := c.putJSON(ctx, "/documents/categories/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes a catalog category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.delete(ctx, "/documents/categories/"+id)
}

// CreateType adds a catalog type.
func (c *Client) CreateType(ctx context.Context, in DocumentTypeInput) (*DocumentType, error) {
	var out DocumentType
	if err := c.postJSON(ctx, "/documents/types", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateType changes a catalog type.
func (c *Client) UpdateType(ctx context.Context, id string, in DocumentTypeInput) (*DocumentType, error) {
	var out DocumentType
	if err := c.putJSON(ctx, "/documents/types/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteType removes a catalog type.
func (c *Client) DeleteType(ctx context.Context, id string) error {
	return c.delete(ctx, "/documents/types/"+id)
}
