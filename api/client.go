// Package api is the typed request layer in front of the external
// backend. It attaches the bearer token when one is present and converts
// HTTP failures into the taxonomy in errors.go. It deliberately applies
// no per-request timeout or cancellation: a hung request leaves the
// caller's busy flag set until the request resolves.
// File: api/client.go
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"ambica-decor/logger"
	"ambica-decor/models"
)

// TokenProvider supplies the current bearer token, or "" when anonymous.
// Implemented by the session service.
type TokenProvider interface {
	Token() string
}

// AnonymousTokens is a TokenProvider for unauthenticated use.
type AnonymousTokens struct{}

// Token always returns the empty token.
func (AnonymousTokens) Token() string { return "" }

// Client is the API gateway client. All other components depend on it.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
}

// New builds a Client for the given backend base URL (e.g.
// "https://example.com/api"). tokens may not be nil; pass
// AnonymousTokens{} for public-only use.
func New(baseURL string, tokens TokenProvider) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		tokens:  tokens,
	}
}

// detailBody is the backend's error envelope ({"detail": "..."}).
type detailBody struct {
	Detail string `json:"detail"`
}

// do performs one round-trip. body and out may be nil.
func (c *Client) do(op, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, kind: ErrServer, Detail: err.Error()}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: op, kind: ErrTransport, Detail: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn.Printf("[api] %s: transport failure: %v", op, err)
		return &Error{Op: op, kind: ErrTransport, Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail detailBody
		_ = json.NewDecoder(resp.Body).Decode(&detail)
		apiErr := &Error{Op: op, Status: resp.StatusCode, Detail: detail.Detail, kind: kindForStatus(resp.StatusCode)}
		logger.Warn.Printf("[api] %s: %v", op, apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Op: op, Status: resp.StatusCode, Detail: err.Error(), kind: ErrServer}
		}
	}
	return nil
}

// ------------------ auth ------------------

// Login exchanges credentials for a bearer token and admin profile.
func (c *Client) Login(email, password string) (models.TokenResponse, error) {
	var tok models.TokenResponse
	body := map[string]string{"email": email, "password": password}
	err := c.do("Login", http.MethodPost, "/auth/login", body, &tok)
	return tok, err
}

// ------------------ events ------------------

// ListEvents fetches all events, optionally filtered server-side by
// category. The showcase page filters client-side and passes "".
func (c *Client) ListEvents(category string) ([]models.Event, error) {
	path := "/events"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var events []models.Event
	err := c.do("ListEvents", http.MethodGet, path, nil, &events)
	return events, err
}

// GetEvent fetches a single event by identifier.
func (c *Client) GetEvent(id string) (models.Event, error) {
	var event models.Event
	err := c.do("GetEvent", http.MethodGet, "/events/"+url.PathEscape(id), nil, &event)
	return event, err
}

// CreateEvent stores a new event and returns the backend's copy.
func (c *Client) CreateEvent(event models.Event) (models.Event, error) {
	var created models.Event
	err := c.do("CreateEvent", http.MethodPost, "/events", event, &created)
	return created, err
}

// UpdateEvent replaces the event with the given identifier.
func (c *Client) UpdateEvent(id string, event models.Event) (models.Event, error) {
	var updated models.Event
	err := c.do("UpdateEvent", http.MethodPut, "/events/"+url.PathEscape(id), event, &updated)
	return updated, err
}

// DeleteEvent removes the event with the given identifier.
func (c *Client) DeleteEvent(id string) error {
	return c.do("DeleteEvent", http.MethodDelete, "/events/"+url.PathEscape(id), nil, nil)
}

// ------------------ services ------------------

// ListServices fetches all service offerings.
func (c *Client) ListServices() ([]models.Service, error) {
	var services []models.Service
	err := c.do("ListServices", http.MethodGet, "/services", nil, &services)
	return services, err
}

// CreateService stores a new service offering.
func (c *Client) CreateService(service models.Service) (models.Service, error) {
	var created models.Service
	err := c.do("CreateService", http.MethodPost, "/services", service, &created)
	return created, err
}

// UpdateService replaces the service with the given identifier.
func (c *Client) UpdateService(id string, service models.Service) (models.Service, error) {
	var updated models.Service
	err := c.do("UpdateService", http.MethodPut, "/services/"+url.PathEscape(id), service, &updated)
	return updated, err
}

// DeleteService removes the service with the given identifier.
func (c *Client) DeleteService(id string) error {
	return c.do("DeleteService", http.MethodDelete, "/services/"+url.PathEscape(id), nil, nil)
}

// ------------------ page content ------------------

// GetContent fetches the keyed content document for a section.
func (c *Client) GetContent(section string) (models.PageContent, error) {
	var doc models.PageContent
	err := c.do("GetContent", http.MethodGet, "/content/"+url.PathEscape(section), nil, &doc)
	if err != nil {
		return doc, err
	}
	doc.Section = section
	if doc.Fields == nil {
		doc.Fields = map[string]any{}
	}
	return doc, nil
}

// PutContent replaces the content document for a section.
func (c *Client) PutContent(section string, doc models.PageContent) error {
	body := map[string]any{"content": doc.Fields}
	return c.do("PutContent", http.MethodPut, "/content/"+url.PathEscape(section), body, nil)
}

// ------------------ enquiries ------------------

// CreateEnquiry submits a contact-form entry. Public, no token needed.
func (c *Client) CreateEnquiry(enquiry models.Enquiry) (models.Enquiry, error) {
	var created models.Enquiry
	err := c.do("CreateEnquiry", http.MethodPost, "/enquiries", enquiry, &created)
	return created, err
}

// ListEnquiries fetches all submitted enquiries (admin only).
func (c *Client) ListEnquiries() ([]models.Enquiry, error) {
	var enquiries []models.Enquiry
	err := c.do("ListEnquiries", http.MethodGet, "/enquiries", nil, &enquiries)
	return enquiries, err
}

// UpdateEnquiryStatus transitions an enquiry to the given status.
func (c *Client) UpdateEnquiryStatus(id, status string) error {
	if !models.ValidEnquiryStatus(status) {
		return &Error{Op: "UpdateEnquiryStatus", kind: ErrServer,
			Detail: fmt.Sprintf("unknown status %q", status)}
	}
	body := map[string]string{"status": status}
	return c.do("UpdateEnquiryStatus", http.MethodPatch, "/enquiries/"+url.PathEscape(id), body, nil)
}

// ------------------ upload tickets ------------------

// CloudinarySignature requests a short-lived signed upload ticket scoped
// to the given resource type ("image" or "video").
func (c *Client) CloudinarySignature(resourceType string) (models.CloudinarySignature, error) {
	var sig models.CloudinarySignature
	path := "/cloudinary/signature?resource_type=" + url.QueryEscape(resourceType)
	err := c.do("CloudinarySignature", http.MethodGet, path, nil, &sig)
	return sig, err
}
