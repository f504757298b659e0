// Package controllers file: controllers/enquiries_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ambica-decor/api"
	"ambica-decor/logger"
	"ambica-decor/models"
	"ambica-decor/services"
)

// EnquiriesController is the admin review panel for contact enquiries.
type EnquiriesController struct {
	Enquiries services.EnquiryServiceInterface
	Sessions  services.SessionServiceInterface
}

// NewEnquiriesController initializes a new instance of EnquiriesController.
func NewEnquiriesController(enquiryService services.EnquiryServiceInterface,
	sessionService services.SessionServiceInterface) *EnquiriesController {
	return &EnquiriesController{Enquiries: enquiryService, Sessions: sessionService}
}

// ViewEnquiries renders the enquiry list, newest first as the backend
// returns them, with the status controls next to each entry.
func (ec *EnquiriesController) ViewEnquiries(c *gin.Context) {
	if err := ec.Enquiries.Load(); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			forceRelogin(c, ec.Sessions)
			return
		}
		logger.Warn.Printf("ViewEnquiries: load failed: %v", err)
		ec.render(c, gin.H{"Error": "Failed to load enquiries."})
		return
	}
	ec.render(c, gin.H{})
}

// SetEnquiryStatus applies a status transition. Any known status can be
// set from any other; the list refreshes from the backend afterwards.
func (ec *EnquiriesController) SetEnquiryStatus(c *gin.Context) {
	id := c.Param("id")
	status := c.PostForm("status")

	err := ec.Enquiries.SetStatus(id, status)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/admin/enquiries")
	case errors.Is(err, api.ErrUnauthorized):
		forceRelogin(c, ec.Sessions)
	default:
		logger.Warn.Printf("SetEnquiryStatus: %s -> %s failed: %v", id, status, err)
		ec.render(c, gin.H{"Error": "Failed to update enquiry status."})
	}
}

func (ec *EnquiriesController) render(c *gin.Context, data gin.H) {
	data["Enquiries"] = ec.Enquiries.List()
	data["Statuses"] = []string{
		models.EnquiryStatusNew,
		models.EnquiryStatusContacted,
		models.EnquiryStatusClosed,
	}
	c.HTML(http.StatusOK, "view_enquiries.html", data)
}
