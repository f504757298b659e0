// Package models defines data structures used across the application.
// File: models/records.go
package models

// ----------------------- event model -----------------------

// Event is a decorated event shown on the showcase page. The backend owns
// the record; this application only ever holds a fetched copy or an
// in-progress draft.
type Event struct {
	EventID     string   `json:"event_id,omitempty"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	EventType   string   `json:"event_type"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// ----------------------- service model -----------------------

// Service is a single offering on the services page. Shaped like Event
// but with a single image instead of a sequence.
type Service struct {
	ServiceID   string `json:"service_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Icon        string `json:"icon,omitempty"`
}

// ----------------------- enquiry model -----------------------

// Enquiry status values. Transitions are unconditional; the review panel
// only ever offers these three.
const (
	EnquiryStatusNew       = "new"
	EnquiryStatusContacted = "contacted"
	EnquiryStatusClosed    = "closed"
)

// Enquiry is a contact-form submission. Created by the public site,
// mutated only via status changes by an admin, never deleted.
type Enquiry struct {
	EnquiryID string `json:"enquiry_id,omitempty"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	EventType string `json:"event_type"`
	EventDate string `json:"event_date"`
	Location  string `json:"location"`
	Message   string `json:"message"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ValidEnquiryStatus reports whether s is one of the known status values.
func ValidEnquiryStatus(s string) bool {
	return s == EnquiryStatusNew || s == EnquiryStatusContacted || s == EnquiryStatusClosed
}
