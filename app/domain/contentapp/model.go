package contentapp

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/jcpaschoal/headless-cms/app/sdk/errs"
	"github.com/jcpaschoal/headless-cms/business/domain/contentbus"
)

// Author is the embedded view of the user that created or edited content.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Content represents the public view of a content instance.
type Content struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenantId"`
	ContentTypeID   string          `json:"contentTypeId"`
	ContentTypeSlug string          `json:"contentTypeSlug"`
	Data            contentbus.Data `json:"data"`
	IsDraft         bool            `json:"isDraft"`
	PublishedAt     *string         `json:"publishedAt"`
	CreatedBy       *Author         `json:"createdBy"`
	UpdatedBy       *Author         `json:"updatedBy"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

func toAppContent(bus contentbus.Content, authors map[string]*Author) Content {
	var published *string
	if bus.PublishedAt != nil {
		s := bus.PublishedAt.Format(time.RFC3339)
		published = &s
	}

	data := bus.Data
	if data == nil {
		data = contentbus.Data{}
	}

	return Content{
		ID:              bus.ID.String(),
		TenantID:        bus.TenantID.String(),
		ContentTypeID:   bus.ContentTypeID.String(),
		ContentTypeSlug: bus.ContentTypeSlug.String(),
		Data:            data,
		IsDraft:         bus.IsDraft,
		PublishedAt:     published,
		CreatedBy:       authors[bus.CreatedBy.String()],
		UpdatedBy:       authors[bus.UpdatedBy.String()],
		CreatedAt:       bus.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       bus.UpdatedAt.Format(time.RFC3339),
	}
}

// =============================================================================

// NewContent defines the data needed to create a content instance. Content
// is a draft unless isDraft is explicitly false.
type NewContent struct {
	Data    json.RawMessage `json:"data"`
	IsDraft *bool           `json:"isDraft"`
}

// Decode implements the web.Decoder interface.
func (app *NewContent) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewContent) Validate() error {
	if _, err := parseData(app.Data); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	return nil
}

// UpdateContent defines the data that can change on a content instance.
type UpdateContent struct {
	Data    json.RawMessage `json:"data"`
	IsDraft *bool           `json:"isDraft"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateContent) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateContent) Validate() error {
	if _, err := parseData(app.Data); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	return nil
}

func toBusUpdateContent(app UpdateContent) (contentbus.UpdateContent, error) {
	var uc contentbus.UpdateContent

	if present(app.Data) {
		data, err := parseData(app.Data)
		if err != nil {
			return contentbus.UpdateContent{}, err
		}
		uc.Data = &data
	}

	uc.IsDraft = app.IsDraft

	return uc, nil
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// parseData decodes the payload. An absent payload is an empty object and
// anything other than a JSON object is rejected.
func parseData(raw json.RawMessage) (contentbus.Data, error) {
	if !present(raw) {
		return contentbus.Data{}, nil
	}

	var data contentbus.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errs.NewFieldErrors("data", err)
	}

	return data, nil
}
