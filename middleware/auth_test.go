// file: middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Helper function to create a test router with session middleware
func setupAuthTestRouter(backendCalls *int32) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	store := cookie.NewStore([]byte("secret"))
	router.Use(sessions.Sessions("testsession", store))

	// login stand-in so tests can obtain a session cookie
	router.GET("/make-session", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set("adminEmail", "admin@ambica.example")
		_ = session.Save()
		c.String(http.StatusOK, "ok")
	})

	router.GET("/admin/dashboard", AuthRequired, func(c *gin.Context) {
		if backendCalls != nil {
			atomic.AddInt32(backendCalls, 1)
		}
		c.String(http.StatusOK, "dashboard")
	})

	return router
}

// Test: anonymous visitors are redirected to the admin login page
func TestAuthRequired_Unauthenticated(t *testing.T) {
	router := setupAuthTestRouter(nil)

	req, _ := http.NewRequest("GET", "/admin/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

// Test: a held session passes the guard without any backend call
func TestAuthRequired_Authenticated(t *testing.T) {
	var backendCalls int32
	router := setupAuthTestRouter(&backendCalls)

	// obtain the session cookie
	loginReq, _ := http.NewRequest("GET", "/make-session", nil)
	loginW := httptest.NewRecorder()
	router.ServeHTTP(loginW, loginReq)
	cookies := loginW.Result().Cookies()
	assert.NotEmpty(t, cookies)

	req, _ := http.NewRequest("GET", "/admin/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dashboard", w.Body.String())
	assert.Equal(t, int32(1), backendCalls)
}

// Test: the guard decides from the cookie alone; a bogus cookie fails
func TestAuthRequired_TamperedCookie(t *testing.T) {
	router := setupAuthTestRouter(nil)

	req, _ := http.NewRequest("GET", "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "testsession", Value: "garbage"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}
