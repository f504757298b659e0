// Package models defines data structures used across the application.
// File: models/session.go
package models

// ----------------------- admin model -----------------------

// Admin is the profile returned by the backend on a successful login.
type Admin struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenResponse is the backend's answer to POST /auth/login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Admin       Admin  `json:"admin"`
}

// Session is the client-held admin session: an opaque bearer token plus
// the admin profile. It lives for the browser session and is destroyed
// on logout. The token is never inspected client-side; an expired token
// is only discovered when the backend rejects a call.
type Session struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

// Authenticated reports whether the session holds a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// ----------------------- upload ticket -----------------------

// CloudinarySignature is the short-lived signed upload ticket issued by
// the backend. It authorizes exactly one direct upload to the media host.
type CloudinarySignature struct {
	Signature    string `json:"signature"`
	Timestamp    int64  `json:"timestamp"`
	CloudName    string `json:"cloud_name"`
	APIKey       string `json:"api_key"`
	Folder       string `json:"folder"`
	ResourceType string `json:"resource_type"`
}
