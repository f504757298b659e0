// Package controllers file: controllers/admin_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"ambica-decor/services"
)

// AdminController renders the console landing page.
type AdminController struct {
	Sessions services.SessionServiceInterface
}

// NewAdminController initializes a new instance of AdminController.
func NewAdminController(sessionService services.SessionServiceInterface) *AdminController {
	return &AdminController{Sessions: sessionService}
}

// Dashboard renders the admin console entry page with links to each
// management area and the printable contact QR code.
func (ad *AdminController) Dashboard(c *gin.Context) {
	session := sessions.Default(c)
	name, _ := session.Get("adminName").(string)
	email, _ := session.Get("adminEmail").(string)
	if name == "" {
		name = email
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"AdminName": name,
	})
}
