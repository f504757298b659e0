// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"ambica-decor/logger"
)

// -------------- authentication middleware --------------

// AuthRequired ensures the visitor holds an admin session before any
// protected view renders. The check is purely local: it reads the cookie
// session and performs no network call. An anonymous visitor is
// redirected to the login entry point.
// Usage:
//
//	admin := router.Group("/admin", middleware.AuthRequired)
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	admin := session.Get("adminEmail")

	if admin == nil {
		logger.Warn.Printf("AuthRequired: no admin session for %s, redirecting to login", c.Request.URL.Path)
		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
		return
	}

	logger.Debug.Println("[AuthRequired] Admin session present - proceeding with request")
	c.Next()
}
