// Package controllers file: controllers/page_controller.go
package controllers

import (
	"bytes"
	"html/template"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"github.com/yuin/goldmark"

	"ambica-decor/gallery"
	"ambica-decor/logger"
	"ambica-decor/models"
	"ambica-decor/services"
)

var (
	// ApplicationURL and WebsocketURL are rendered into templates so the
	// browser knows where to reach us.
	ApplicationURL string
	WebsocketURL   string
)

// SetConfig sets global application and WebSocket URLs.
func SetConfig(appURL, wsURL string) {
	ApplicationURL = appURL
	WebsocketURL = wsURL
	logger.Info.Printf("SetConfig: Global config updated: ApplicationURL=%s, WebsocketURL=%s", appURL, wsURL)
}

// Health responds to load-balancer health checks.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// PublicAPI is the slice of the API client the public site needs.
type PublicAPI interface {
	ListEvents(category string) ([]models.Event, error)
	ListServices() ([]models.Service, error)
	GetContent(section string) (models.PageContent, error)
	CreateEnquiry(enquiry models.Enquiry) (models.Enquiry, error)
}

// PageController renders the public marketing site. Content documents
// come from the backend with typed fallbacks, so a failed fetch shows
// defaults instead of an error page.
type PageController struct {
	API PublicAPI

	// last successfully fetched events, by identifier; the gallery
	// modal binds against this cache without another round-trip
	mu     sync.Mutex
	events map[string]models.Event
}

// NewPageController initializes a new instance of PageController.
func NewPageController(apiClient PublicAPI) *PageController {
	return &PageController{API: apiClient, events: make(map[string]models.Event)}
}

// LookupEvent resolves an event from the last successful fetch. Wired
// into the websocket package as the gallery's event source.
func (pc *PageController) LookupEvent(eventID string) (models.Event, bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	event, ok := pc.events[eventID]
	return event, ok
}

// rememberEvents refreshes the modal's event cache.
func (pc *PageController) rememberEvents(events []models.Event) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	for _, event := range events {
		if event.EventID != "" {
			pc.events[event.EventID] = event
		}
	}
}

// renderMarkdown converts long-form content fields to HTML.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		logger.Warn.Printf("renderMarkdown: %v", err)
		return template.HTML(template.HTMLEscapeString(src)) // #nosec G203
	}
	return template.HTML(buf.String()) // #nosec G203
}

// ------------------ public pages ------------------

// Home renders the homepage from the "homepage" content document.
func (pc *PageController) Home(c *gin.Context) {
	doc, err := pc.API.GetContent(models.SectionHomepage)
	if err != nil {
		logger.Warn.Printf("Home: content fetch failed, using defaults: %v", err)
	}
	home := models.HomepageFrom(doc)

	highlights, err := pc.API.ListServices()
	if err != nil {
		logger.Warn.Printf("Home: services fetch failed: %v", err)
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Content":   home,
		"IntroHTML": renderMarkdown(home.IntroText),
		"Services":  highlights,
	})
}

// About renders the about page from the "about" content document.
func (pc *PageController) About(c *gin.Context) {
	doc, err := pc.API.GetContent(models.SectionAbout)
	if err != nil {
		logger.Warn.Printf("About: content fetch failed, using defaults: %v", err)
	}
	about := models.AboutFrom(doc)

	paragraphs := make([]template.HTML, 0, len(about.Paragraphs))
	for _, p := range about.Paragraphs {
		paragraphs = append(paragraphs, renderMarkdown(p))
	}

	c.HTML(http.StatusOK, "about.html", gin.H{
		"Content":    about,
		"Paragraphs": paragraphs,
	})
}

// Services renders the service offerings.
func (pc *PageController) Services(c *gin.Context) {
	offerings, err := pc.API.ListServices()
	if err != nil {
		logger.Warn.Printf("Services: fetch failed: %v", err)
		c.HTML(http.StatusOK, "services.html", gin.H{
			"Error": "Services are unavailable right now, please try again.",
		})
		return
	}
	c.HTML(http.StatusOK, "services.html", gin.H{"Services": offerings})
}

// Showcase renders the event gallery with category filtering. Filtering
// is recomputed from the full fetched list on every request; the
// selected category survives modal opens because it lives in the URL.
func (pc *PageController) Showcase(c *gin.Context) {
	events, err := pc.API.ListEvents("")
	if err != nil {
		logger.Warn.Printf("Showcase: events fetch failed: %v", err)
		c.HTML(http.StatusOK, "showcase.html", gin.H{
			"Error": "The showcase is unavailable right now, please try again.",
		})
		return
	}
	pc.rememberEvents(events)

	selected := c.Query("category")
	if selected == "" {
		selected = gallery.CategoryAll
	}

	c.HTML(http.StatusOK, "showcase.html", gin.H{
		"Categories":   gallery.Categories(events),
		"Selected":     selected,
		"Events":       gallery.Filter(events, selected),
		"WebsocketURL": WebsocketURL,
	})
}

// Contact renders the contact page with the business's location details.
func (pc *PageController) Contact(c *gin.Context) {
	doc, err := pc.API.GetContent(models.SectionLocation)
	if err != nil {
		logger.Warn.Printf("Contact: content fetch failed, using defaults: %v", err)
	}
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"Location": models.LocationFrom(doc),
		"Enquiry":  models.Enquiry{},
	})
}

// SubmitEnquiry handles the public contact form. On success the form
// resets to empty fields; on failure the visitor's input is preserved.
func (pc *PageController) SubmitEnquiry(c *gin.Context) {
	enquiry := models.Enquiry{
		Name:      c.PostForm("name"),
		Phone:     c.PostForm("phone"),
		Email:     c.PostForm("email"),
		EventType: c.PostForm("event_type"),
		EventDate: c.PostForm("event_date"),
		Location:  c.PostForm("location"),
		Message:   c.PostForm("message"),
	}

	doc, _ := pc.API.GetContent(models.SectionLocation)
	location := models.LocationFrom(doc)

	if enquiry.Name == "" || enquiry.Phone == "" || enquiry.Email == "" ||
		enquiry.EventType == "" || enquiry.EventDate == "" ||
		enquiry.Location == "" || enquiry.Message == "" {
		c.HTML(http.StatusBadRequest, "contact.html", gin.H{
			"Location": location,
			"Enquiry":  enquiry,
			"Error":    "Please fill in all fields.",
		})
		return
	}

	if _, err := pc.API.CreateEnquiry(enquiry); err != nil {
		logger.Warn.Printf("SubmitEnquiry: create failed: %v", err)
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"Location": location,
			"Enquiry":  enquiry,
			"Error":    "We couldn't send your enquiry, please try again.",
		})
		return
	}

	logger.Info.Printf("SubmitEnquiry: enquiry received from %s", enquiry.Email)
	// success clears the form back to empty fields
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"Location": location,
		"Enquiry":  models.Enquiry{},
		"Success":  "Thank you! We'll be in touch soon.",
	})
}

// GetContactQRCode serves a QR code for the contact page, used by the
// admin for printed materials.
func GetContactQRCode(c *gin.Context) {
	qrBytes, err := services.GenerateContactQRCode(ApplicationURL, 300, services.QRCodeEncoder(qrcode.Encode))
	if err != nil {
		logger.Error.Printf("GetContactQRCode: Error generating QR code: %v", err)
		c.String(http.StatusInternalServerError, "QR generation failed")
		return
	}

	c.Header("Content-Type", "image/png")
	c.Header("Content-Disposition", "inline; filename=\"contact-qrcode.png\"")
	if _, err := c.Writer.Write(qrBytes); err != nil {
		logger.Error.Printf("GetContactQRCode: Error writing QR code bytes: %v", err)
	}
}
