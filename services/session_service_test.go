// file: services/session_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"ambica-decor/models"
)

func acceptingAuthenticator(token string) Authenticator {
	return func(email, password string) (models.TokenResponse, error) {
		return models.TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
			Admin:       models.Admin{Email: email, Name: "Ambica Admin"},
		}, nil
	}
}

func rejectingAuthenticator(email, password string) (models.TokenResponse, error) {
	return models.TokenResponse{}, errors.New("invalid credentials")
}

// Test: a fresh service is anonymous
func TestSessionService_InitiallyAnonymous(t *testing.T) {
	s := NewSessionService(acceptingAuthenticator("tok"))

	assert.Empty(t, s.Token())
	assert.False(t, s.Current().Authenticated())
}

// Test: successful login stores the token and admin profile
func TestSessionService_Login(t *testing.T) {
	s := NewSessionService(acceptingAuthenticator("tok-1"))

	session, err := s.Login("admin@ambica.example", "pw")
	assert.NoError(t, err)
	assert.Equal(t, "tok-1", session.Token)
	assert.Equal(t, "admin@ambica.example", session.Admin.Email)

	assert.Equal(t, "tok-1", s.Token())
	assert.True(t, s.Current().Authenticated())
}

// Test: failed login leaves the previous session untouched
func TestSessionService_LoginFailureKeepsState(t *testing.T) {
	s := NewSessionService(acceptingAuthenticator("tok-1"))
	_, err := s.Login("admin@ambica.example", "pw")
	assert.NoError(t, err)

	s.SetAuthenticator(rejectingAuthenticator)
	_, err = s.Login("admin@ambica.example", "wrong")
	assert.Error(t, err)

	assert.Equal(t, "tok-1", s.Token(), "failed login must not destroy the held session")
}

// Test: logout returns the guard to anonymous
func TestSessionService_Logout(t *testing.T) {
	s := NewSessionService(acceptingAuthenticator("tok-1"))
	_, err := s.Login("admin@ambica.example", "pw")
	assert.NoError(t, err)

	s.Logout()

	assert.Empty(t, s.Token())
	assert.False(t, s.Current().Authenticated())
}

// Test: logging in without a wired authenticator fails cleanly
func TestSessionService_NoAuthenticator(t *testing.T) {
	s := NewSessionService(nil)
	_, err := s.Login("admin@ambica.example", "pw")
	assert.Error(t, err)
}
