// file: api/client_test.go
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"ambica-decor/models"
)

// staticTokens is a TokenProvider with a fixed token.
type staticTokens struct{ token string }

func (s staticTokens) Token() string { return s.token }

// Test: the bearer token is attached whenever one is present
func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]models.Event{})
	}))
	defer server.Close()

	client := New(server.URL, staticTokens{token: "tok-123"})
	_, err := client.ListEvents("")

	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

// Test: anonymous calls carry no Authorization header
func TestClient_AnonymousOmitsHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]models.Service{})
	}))
	defer server.Close()

	client := New(server.URL, AnonymousTokens{})
	_, err := client.ListServices()

	assert.NoError(t, err)
	assert.Empty(t, gotAuth)
}

// Test: 401 and 403 map to ErrUnauthorized with the backend's detail
func TestClient_UnauthorizedTaxonomy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"})
	}))
	defer server.Close()

	client := New(server.URL, staticTokens{token: "stale"})
	_, err := client.ListEnquiries()

	assert.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *Error
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "token expired", apiErr.Detail)
}

// Test: 404 and 409 map to ErrNotFound
func TestClient_NotFoundTaxonomy(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusConflict} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := New(server.URL, AnonymousTokens{})
		_, err := client.GetEvent("missing")
		assert.ErrorIs(t, err, ErrNotFound, "status %d", status)

		server.Close()
	}
}

// Test: 5xx maps to ErrServer
func TestClient_ServerTaxonomy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, AnonymousTokens{})
	_, err := client.ListEvents("")
	assert.ErrorIs(t, err, ErrServer)
}

// Test: an unreachable backend maps to ErrTransport
func TestClient_TransportTaxonomy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening any more

	client := New(server.URL, AnonymousTokens{})
	_, err := client.ListEvents("")
	assert.ErrorIs(t, err, ErrTransport)
}

// Test: login posts credentials and decodes the token envelope
func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var creds map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "admin@ambica.example", creds["email"])

		_ = json.NewEncoder(w).Encode(models.TokenResponse{
			AccessToken: "tok-456",
			TokenType:   "bearer",
			Admin:       models.Admin{Email: creds["email"], Name: "Ambica Admin"},
		})
	}))
	defer server.Close()

	client := New(server.URL, AnonymousTokens{})
	tok, err := client.Login("admin@ambica.example", "pw")

	assert.NoError(t, err)
	assert.Equal(t, "tok-456", tok.AccessToken)
	assert.Equal(t, "Ambica Admin", tok.Admin.Name)
}

// Test: category filtering is passed through as a query parameter
func TestClient_ListEventsCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "wedding", r.URL.Query().Get("category"))
		_ = json.NewEncoder(w).Encode([]models.Event{{EventID: "e1", Category: "wedding"}})
	}))
	defer server.Close()

	client := New(server.URL, AnonymousTokens{})
	events, err := client.ListEvents("wedding")

	assert.NoError(t, err)
	assert.Len(t, events, 1)
}

// Test: content documents round-trip the raw field map untouched
func TestClient_ContentRoundTrip(t *testing.T) {
	var putBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"section_name": "homepage",
				"content": map[string]any{
					"hero_title":   "Ambica",
					"future_field": "kept as-is",
				},
			})
		case http.MethodPut:
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&putBody))
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	client := New(server.URL, staticTokens{token: "tok"})
	doc, err := client.GetContent("homepage")
	assert.NoError(t, err)
	assert.Equal(t, "homepage", doc.Section)

	doc.Set("hero_title", "Ambica Decor")
	assert.NoError(t, client.PutContent("homepage", doc))

	content := putBody["content"].(map[string]any)
	assert.Equal(t, "Ambica Decor", content["hero_title"])
	assert.Equal(t, "kept as-is", content["future_field"], "unknown fields must survive editing")
}

// Test: a missing content body yields an empty, non-nil field map
func TestClient_GetContentEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(server.URL, AnonymousTokens{})
	doc, err := client.GetContent("about")

	assert.NoError(t, err)
	assert.NotNil(t, doc.Fields)
	assert.Equal(t, "about", doc.Section)
}

// Test: unknown enquiry statuses are rejected before any network call
func TestClient_UpdateEnquiryStatusValidation(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := New(server.URL, staticTokens{token: "tok"})
	err := client.UpdateEnquiryStatus("q1", "archived")

	assert.Error(t, err)
	assert.False(t, called)
}

// Test: the signature ticket request carries the resource type
func TestClient_CloudinarySignature(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "video", r.URL.Query().Get("resource_type"))
		_ = json.NewEncoder(w).Encode(models.CloudinarySignature{
			Signature: "sig", Timestamp: 1700000000, CloudName: "demo",
			APIKey: "key", Folder: "ambica", ResourceType: "video",
		})
	}))
	defer server.Close()

	client := New(server.URL, staticTokens{token: "tok"})
	sig, err := client.CloudinarySignature("video")

	assert.NoError(t, err)
	assert.Equal(t, "demo", sig.CloudName)
	assert.Equal(t, int64(1700000000), sig.Timestamp)
}
