// Package services: services/session_service.go
package services

import (
	"errors"
	"sync"

	"ambica-decor/logger"
	"ambica-decor/models"
)

// ErrNotAuthenticated is returned when an operation needs a session and
// none is held.
var ErrNotAuthenticated = errors.New("no admin session")

// Authenticator exchanges credentials for a token. Implemented by the
// API client's Login; injectable for tests.
type Authenticator func(email, password string) (models.TokenResponse, error)

// SessionServiceInterface is the auth guard's state holder. Two states:
// anonymous (empty token) and authenticated. The token is opaque; no
// expiry detection happens here - an expired token surfaces as an
// unauthorized API failure and callers then call Logout.
type SessionServiceInterface interface {
	Login(email, password string) (models.Session, error)
	Logout()
	Current() models.Session
	Token() string
}

// SessionService holds the single process-wide admin session. The site
// has one admin; the cookie session marks which browser is logged in,
// this service holds the bearer token the API client attaches.
type SessionService struct {
	mu           sync.Mutex
	session      models.Session
	authenticate Authenticator
}

// NewSessionService creates an anonymous SessionService.
func NewSessionService(authenticate Authenticator) *SessionService {
	return &SessionService{authenticate: authenticate}
}

// SetAuthenticator wires the login backend after construction. Needed
// because the API client itself takes this service as token provider.
func (s *SessionService) SetAuthenticator(authenticate Authenticator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticate = authenticate
}

// Login exchanges credentials for a session. On failure the previous
// session state is untouched.
func (s *SessionService) Login(email, password string) (models.Session, error) {
	s.mu.Lock()
	authenticate := s.authenticate
	s.mu.Unlock()

	if authenticate == nil {
		return models.Session{}, errors.New("session service has no authenticator")
	}

	tok, err := authenticate(email, password)
	if err != nil {
		logger.Warn.Printf("Login failed for %s: %v", email, err)
		return models.Session{}, err
	}

	session := models.Session{Token: tok.AccessToken, Admin: tok.Admin}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	logger.Info.Printf("Admin %s logged in", tok.Admin.Email)
	return session, nil
}

// Logout destroys the held session, returning the guard to anonymous.
func (s *SessionService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Authenticated() {
		logger.Info.Printf("Admin %s logged out", s.session.Admin.Email)
	}
	s.session = models.Session{}
}

// Current returns a copy of the held session.
func (s *SessionService) Current() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Token implements api.TokenProvider.
func (s *SessionService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Token
}
