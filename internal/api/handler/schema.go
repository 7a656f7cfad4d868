package handler

import (
	"encoding/json"

	"github.com/postboard/api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     example:"Ann"`
	Email    string `json:"email"    example:"a@x.com"`
	Password string `json:"password" example:"password1"`
}

type loginRequest struct {
	Email    string `json:"email"    example:"a@x.com"`
	Password string `json:"password" example:"password1"`
}

type logoutResponse struct {
	Success bool `json:"success"`
}

// --- Posts ---

type createPostRequest struct {
	Title   string `json:"title"   example:"Hello"`
	Content string `json:"content" example:"First post"`
}

// updatePostRequest distinguishes absent fields from explicit values and
// explicit nulls.
type updatePostRequest struct {
	Title   optionalString `json:"title,omitempty"   swaggertype:"string" example:"Hello again"`
	Content optionalString `json:"content,omitempty" swaggertype:"string"`
}

// optionalString is a JSON string field that remembers whether it was sent.
// A sent null leaves Value nil with Present set.
type optionalString struct {
	Value   *string
	Present bool
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o optionalString) null() bool {
	return o.Present && o.Value == nil
}

type deletePostResponse struct {
	Deleted bool `json:"deleted"`
}

// Swagger-only aliases so the generated document names the payloads.
type (
	authPayload = domain.AuthPayload
	postView    = domain.PostView
	publicUser  = domain.PublicUser
)
