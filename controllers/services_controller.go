// Package controllers file: controllers/services_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ambica-decor/api"
	"ambica-decor/forms"
	"ambica-decor/logger"
	"ambica-decor/models"
	"ambica-decor/services"
)

// ServicesController is the admin workflow for service offerings. Same
// draft/submit semantics as events, with a single optional image.
type ServicesController struct {
	Form     *forms.Controller[models.Service]
	Uploads  services.UploadServiceInterface
	Sessions services.SessionServiceInterface
}

// NewServicesController wires the generic form controller to the
// service operations of the API client.
func NewServicesController(apiClient *api.Client, uploads services.UploadServiceInterface,
	sessionService services.SessionServiceInterface) *ServicesController {

	ops := forms.Ops[models.Service]{
		List: apiClient.ListServices,
		Create: func(svc models.Service) error {
			_, err := apiClient.CreateService(svc)
			return err
		},
		Update: func(id string, svc models.Service) error {
			_, err := apiClient.UpdateService(id, svc)
			return err
		},
		Delete: func(id string) error { return apiClient.DeleteService(id) },
		ID:     func(svc models.Service) string { return svc.ServiceID },
		Missing: func(svc models.Service) []string {
			var missing []string
			if svc.Title == "" {
				missing = append(missing, "title")
			}
			if svc.Description == "" {
				missing = append(missing, "description")
			}
			return missing
		},
	}

	return &ServicesController{
		Form:     forms.New(ops),
		Uploads:  uploads,
		Sessions: sessionService,
	}
}

// ManageServices renders the service list with the add/edit dialog.
func (sc *ServicesController) ManageServices(c *gin.Context) {
	if err := sc.Form.Load(); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			forceRelogin(c, sc.Sessions)
			return
		}
		logger.Warn.Printf("ManageServices: load failed: %v", err)
		sc.render(c, gin.H{"Error": "Failed to load services."})
		return
	}
	sc.render(c, gin.H{"Notice": c.Query("notice")})
}

// NewService opens a fresh draft.
func (sc *ServicesController) NewService(c *gin.Context) {
	sc.Form.BeginCreate(models.Service{})
	sc.render(c, gin.H{})
}

// EditService copies the chosen service into a draft.
func (sc *ServicesController) EditService(c *gin.Context) {
	id := c.Param("id")
	for _, svc := range sc.Form.Items() {
		if svc.ServiceID == id {
			sc.Form.BeginEdit(svc)
			sc.render(c, gin.H{})
			return
		}
	}
	c.Redirect(http.StatusFound, "/admin/services")
}

// SaveService folds the posted fields into the draft and either uploads
// the selected image or submits, per the posted action.
func (sc *ServicesController) SaveService(c *gin.Context) {
	if _, ok := sc.Form.Draft(); !ok {
		c.Redirect(http.StatusFound, "/admin/services")
		return
	}

	if err := sc.Form.SetDraft(func(svc *models.Service) {
		svc.Title = c.PostForm("title")
		svc.Description = c.PostForm("description")
		svc.Icon = c.PostForm("icon")
	}); err != nil {
		c.Redirect(http.StatusFound, "/admin/services")
		return
	}

	if c.PostForm("action") == "upload" {
		sc.uploadImage(c)
		return
	}
	sc.submit(c)
}

// uploadImage replaces the draft's image with a freshly uploaded one.
func (sc *ServicesController) uploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		sc.render(c, gin.H{"Error": "No image selected."})
		return
	}
	file, err := header.Open()
	if err != nil {
		sc.render(c, gin.H{"Error": "Failed to read the selected image."})
		return
	}
	defer func() { _ = file.Close() }()

	sc.Form.SetUploading(true)
	defer sc.Form.SetUploading(false)

	url, err := sc.Uploads.Upload(services.UploadFile{
		Name:         header.Filename,
		ResourceType: "image",
		Data:         file,
	})
	if err != nil {
		logger.Warn.Printf("SaveService: image upload failed: %v", err)
		sc.render(c, gin.H{"Error": "Failed to upload image."})
		return
	}

	_ = sc.Form.SetDraft(func(svc *models.Service) { svc.ImageURL = url })
	sc.render(c, gin.H{"Notice": "Image uploaded successfully"})
}

func (sc *ServicesController) submit(c *gin.Context) {
	err := sc.Form.Submit()
	if err == nil {
		c.Redirect(http.StatusFound, "/admin/services?notice=saved")
		return
	}

	var validation *forms.ValidationError
	switch {
	case errors.As(err, &validation):
		sc.render(c, gin.H{"Error": validation.Error()})
	case errors.Is(err, api.ErrUnauthorized):
		forceRelogin(c, sc.Sessions)
	case errors.Is(err, forms.ErrBusy):
		sc.render(c, gin.H{"Error": "Still saving, please wait."})
	default:
		logger.Warn.Printf("SaveService: submit failed: %v", err)
		sc.render(c, gin.H{"Error": "Failed to save service."})
	}
}

// DeleteService removes a service after explicit confirmation.
func (sc *ServicesController) DeleteService(c *gin.Context) {
	confirmed := c.PostForm("confirm") == "yes"
	err := sc.Form.Remove(c.Param("id"), confirmed)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/admin/services?notice=deleted")
	case errors.Is(err, forms.ErrNotConfirmed):
		sc.render(c, gin.H{"Error": "Deletion requires confirmation."})
	case errors.Is(err, api.ErrUnauthorized):
		forceRelogin(c, sc.Sessions)
	default:
		logger.Warn.Printf("DeleteService: %v", err)
		sc.render(c, gin.H{"Error": "Failed to delete service."})
	}
}

func (sc *ServicesController) render(c *gin.Context, data gin.H) {
	data["Services"] = sc.Form.Items()
	if draft, ok := sc.Form.Draft(); ok {
		data["Draft"] = draft
	}
	_, saving, uploading := sc.Form.Busy()
	data["Saving"] = saving
	data["Uploading"] = uploading
	c.HTML(http.StatusOK, "manage_services.html", data)
}
