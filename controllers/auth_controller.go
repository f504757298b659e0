// Package controllers handles admin authentication and session management.
// File: controllers/auth_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"ambica-decor/logger"
	"ambica-decor/services"
)

// AuthController logs admins in and out. Credentials are never verified
// locally; they are forwarded to the backend, which answers with the
// bearer token the session service holds for the rest of the session.
type AuthController struct {
	Sessions services.SessionServiceInterface
}

// NewAuthController initializes a new instance of AuthController.
func NewAuthController(sessionService services.SessionServiceInterface) *AuthController {
	return &AuthController{Sessions: sessionService}
}

// ShowLoginPage renders the admin login form.
func (ac *AuthController) ShowLoginPage(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get("adminEmail") != nil {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.HTML(http.StatusOK, "admin_login.html", gin.H{})
}

// PerformLogin authenticates against the backend and stores the admin
// identity in the cookie session. On failure the form re-renders with an
// error and nothing is stored.
func (ac *AuthController) PerformLogin(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if email == "" || password == "" {
		logger.Warn.Println("PerformLogin: Missing email or password")
		c.HTML(http.StatusBadRequest, "admin_login.html", gin.H{
			"Error": "Please fill in all fields.",
		})
		return
	}

	adminSession, err := ac.Sessions.Login(email, password)
	if err != nil {
		logger.Warn.Printf("PerformLogin: Invalid login attempt for %s", email)
		c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{
			"Error": "Invalid email or password.",
		})
		return
	}

	session := sessions.Default(c)
	session.Set("adminEmail", adminSession.Admin.Email)
	session.Set("adminName", adminSession.Admin.Name)
	if err := session.Save(); err != nil {
		logger.Error.Println("PerformLogin: Failed to save session:", err)
		ac.Sessions.Logout()
		c.HTML(http.StatusInternalServerError, "admin_login.html", gin.H{
			"Error": "Internal error, please try again.",
		})
		return
	}

	logger.Info.Printf("PerformLogin: Admin %s authenticated", adminSession.Admin.Email)
	c.Redirect(http.StatusFound, "/admin")
}

// Logout clears both the cookie session and the held bearer token.
func (ac *AuthController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	if email := session.Get("adminEmail"); email != nil {
		logger.Info.Printf("Logout: Logging out admin %v", email)
	}

	session.Clear()
	if err := session.Save(); err != nil {
		logger.Error.Printf("Logout: Error saving session during logout: %v", err)
	}
	ac.Sessions.Logout()

	c.Redirect(http.StatusFound, "/admin/login")
}

// forceRelogin is shared by the admin controllers: any unauthorized
// answer from the backend means the token expired mid-session, so the
// session is treated as invalid and the admin is sent back to login.
func forceRelogin(c *gin.Context, sessionService services.SessionServiceInterface) {
	logger.Warn.Println("Backend rejected the admin token; forcing re-login")
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	sessionService.Logout()
	c.Redirect(http.StatusFound, "/admin/login")
}
