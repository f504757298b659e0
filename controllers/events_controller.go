// Package controllers file: controllers/events_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ambica-decor/api"
	"ambica-decor/forms"
	"ambica-decor/logger"
	"ambica-decor/models"
	"ambica-decor/services"
	"ambica-decor/websocket"
)

// notifyShowcaseChanged pushes a refresh hint to open gallery viewers
// after an event mutation. Overridable for tests.
var notifyShowcaseChanged = websocket.BroadcastShowcaseUpdated

// EventsController is the admin workflow for showcase events: cached
// list, draft form with a multi-image sequence, Cloudinary uploads.
type EventsController struct {
	Form     *forms.Controller[models.Event]
	Uploads  services.UploadServiceInterface
	Sessions services.SessionServiceInterface
}

// NewEventsController wires the generic form controller to the event
// operations of the API client.
func NewEventsController(apiClient *api.Client, uploads services.UploadServiceInterface,
	sessionService services.SessionServiceInterface) *EventsController {

	ops := forms.Ops[models.Event]{
		List: func() ([]models.Event, error) { return apiClient.ListEvents("") },
		Create: func(event models.Event) error {
			_, err := apiClient.CreateEvent(event)
			return err
		},
		Update: func(id string, event models.Event) error {
			_, err := apiClient.UpdateEvent(id, event)
			return err
		},
		Delete: func(id string) error { return apiClient.DeleteEvent(id) },
		ID:     func(event models.Event) string { return event.EventID },
		Missing: func(event models.Event) []string {
			var missing []string
			required := []struct{ name, value string }{
				{"title", event.Title},
				{"location", event.Location},
				{"event_type", event.EventType},
				{"category", event.Category},
				{"description", event.Description},
				{"date", event.Date},
			}
			for _, field := range required {
				if field.value == "" {
					missing = append(missing, field.name)
				}
			}
			return missing
		},
	}

	return &EventsController{
		Form:     forms.New(ops),
		Uploads:  uploads,
		Sessions: sessionService,
	}
}

// ManageEvents renders the event list with the add/edit dialog.
func (ec *EventsController) ManageEvents(c *gin.Context) {
	if err := ec.Form.Load(); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			forceRelogin(c, ec.Sessions)
			return
		}
		logger.Warn.Printf("ManageEvents: load failed: %v", err)
		ec.render(c, gin.H{"Error": "Failed to load events."})
		return
	}
	ec.render(c, gin.H{"Notice": c.Query("notice")})
}

// NewEvent opens a fresh draft.
func (ec *EventsController) NewEvent(c *gin.Context) {
	ec.Form.BeginCreate(models.Event{Images: []string{}})
	ec.render(c, gin.H{})
}

// EditEvent copies the chosen event into a draft.
func (ec *EventsController) EditEvent(c *gin.Context) {
	id := c.Param("id")
	for _, event := range ec.Form.Items() {
		if event.EventID == id {
			ec.Form.BeginEdit(event)
			ec.render(c, gin.H{})
			return
		}
	}
	c.Redirect(http.StatusFound, "/admin/events")
}

// SaveEvent handles every mutation of the open draft. The form posts an
// action: "upload" adds image files, "remove_image" drops one by index,
// "save" validates and submits. Failures always preserve the draft.
func (ec *EventsController) SaveEvent(c *gin.Context) {
	if _, ok := ec.Form.Draft(); !ok {
		c.Redirect(http.StatusFound, "/admin/events")
		return
	}

	// fold the posted fields into the draft before acting
	if err := ec.Form.SetDraft(func(event *models.Event) {
		event.Title = c.PostForm("title")
		event.Location = c.PostForm("location")
		event.EventType = c.PostForm("event_type")
		event.Category = c.PostForm("category")
		event.Description = c.PostForm("description")
		event.Date = c.PostForm("date")
	}); err != nil {
		c.Redirect(http.StatusFound, "/admin/events")
		return
	}

	switch c.PostForm("action") {
	case "upload":
		ec.uploadImages(c)
	case "remove_image":
		index, err := strconv.Atoi(c.PostForm("index"))
		if err == nil {
			_ = ec.Form.SetDraft(func(event *models.Event) {
				event.Images = forms.RemoveAt(event.Images, index)
			})
		}
		ec.render(c, gin.H{})
	default:
		ec.submit(c)
	}
}

// uploadImages sends every selected file to the media host concurrently.
// All-or-nothing: one failure discards the whole batch and the draft's
// image list is untouched.
func (ec *EventsController) uploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || form == nil || len(form.File["images"]) == 0 {
		ec.render(c, gin.H{"Error": "No images selected."})
		return
	}

	ec.Form.SetUploading(true)
	defer ec.Form.SetUploading(false)

	var files []services.UploadFile
	var closers []func() error
	for _, header := range form.File["images"] {
		file, err := header.Open()
		if err != nil {
			ec.render(c, gin.H{"Error": "Failed to read the selected images."})
			return
		}
		closers = append(closers, file.Close)
		files = append(files, services.UploadFile{
			Name:         header.Filename,
			ResourceType: "image",
			Data:         file,
		})
	}
	defer func() {
		for _, close := range closers {
			_ = close()
		}
	}()

	urls, err := ec.Uploads.UploadAll(files)
	if err != nil {
		logger.Warn.Printf("SaveEvent: image upload failed: %v", err)
		ec.render(c, gin.H{"Error": "Failed to upload images."})
		return
	}

	_ = ec.Form.SetDraft(func(event *models.Event) {
		for _, url := range urls {
			event.Images = forms.AppendItem(event.Images, url)
		}
	})
	ec.render(c, gin.H{"Notice": strconv.Itoa(len(urls)) + " image(s) uploaded successfully"})
}

// submit validates and reconciles the draft with the backend.
func (ec *EventsController) submit(c *gin.Context) {
	err := ec.Form.Submit()
	if err == nil {
		notifyShowcaseChanged()
		c.Redirect(http.StatusFound, "/admin/events?notice=saved")
		return
	}

	var validation *forms.ValidationError
	switch {
	case errors.As(err, &validation):
		ec.render(c, gin.H{"Error": validation.Error()})
	case errors.Is(err, api.ErrUnauthorized):
		forceRelogin(c, ec.Sessions)
	case errors.Is(err, forms.ErrBusy):
		ec.render(c, gin.H{"Error": "Still saving, please wait."})
	default:
		logger.Warn.Printf("SaveEvent: submit failed: %v", err)
		ec.render(c, gin.H{"Error": "Failed to save event."})
	}
}

// DeleteEvent removes an event after explicit confirmation.
func (ec *EventsController) DeleteEvent(c *gin.Context) {
	confirmed := c.PostForm("confirm") == "yes"
	err := ec.Form.Remove(c.Param("id"), confirmed)
	switch {
	case err == nil:
		notifyShowcaseChanged()
		c.Redirect(http.StatusFound, "/admin/events?notice=deleted")
	case errors.Is(err, forms.ErrNotConfirmed):
		ec.render(c, gin.H{"Error": "Deletion requires confirmation."})
	case errors.Is(err, api.ErrUnauthorized):
		forceRelogin(c, ec.Sessions)
	default:
		logger.Warn.Printf("DeleteEvent: %v", err)
		ec.render(c, gin.H{"Error": "Failed to delete event."})
	}
}

// render draws the manage-events page with the current list and draft.
func (ec *EventsController) render(c *gin.Context, data gin.H) {
	data["Events"] = ec.Form.Items()
	if draft, ok := ec.Form.Draft(); ok {
		data["Draft"] = draft
	}
	_, saving, uploading := busyFlags(ec.Form)
	data["Saving"] = saving
	data["Uploading"] = uploading
	c.HTML(http.StatusOK, "manage_events.html", data)
}

// busyFlags spreads a form controller's flags for templates.
func busyFlags[T any](form *forms.Controller[T]) (bool, bool, bool) {
	return form.Busy()
}
