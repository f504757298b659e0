// Package models defines data structures used across the application.
// File: models/content.go
package models

// Page content section keys known to the client.
const (
	SectionHomepage = "homepage"
	SectionAbout    = "about"
	SectionLocation = "location"
)

// PageContent is a keyed, schema-optional document held by the backend
// under /content/:key. The raw field map is round-tripped untouched so
// the client never drops fields it does not understand; the typed
// accessors below default missing fields instead of failing.
type PageContent struct {
	Section string         `json:"section_name,omitempty"`
	Fields  map[string]any `json:"content"`
}

// NewPageContent returns an empty document for the given section.
func NewPageContent(section string) PageContent {
	return PageContent{Section: section, Fields: map[string]any{}}
}

// String returns the named field as a string, or fallback when the field
// is absent or not a string.
func (p PageContent) String(key, fallback string) string {
	if v, ok := p.Fields[key].(string); ok {
		return v
	}
	return fallback
}

// Strings returns the named field as a string slice. Absent or
// mistyped fields yield nil; mistyped elements are skipped.
func (p PageContent) Strings(key string) []string {
	raw, ok := p.Fields[key].([]any)
	if !ok {
		// already-typed slice, e.g. when built client-side
		if typed, ok := p.Fields[key].([]string); ok {
			return typed
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// TitledRecord is an entry of a "values"-style list: a short title with
// a longer description.
type TitledRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Records returns the named field as a list of TitledRecords, skipping
// malformed entries.
func (p PageContent) Records(key string) []TitledRecord {
	raw, ok := p.Fields[key].([]any)
	if !ok {
		if typed, ok := p.Fields[key].([]TitledRecord); ok {
			return typed
		}
		return nil
	}
	out := make([]TitledRecord, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rec := TitledRecord{}
		if s, ok := m["title"].(string); ok {
			rec.Title = s
		}
		if s, ok := m["description"].(string); ok {
			rec.Description = s
		}
		out = append(out, rec)
	}
	return out
}

// Set stores a field value on the document, allocating the map if the
// document came back empty from the backend.
func (p *PageContent) Set(key string, value any) {
	if p.Fields == nil {
		p.Fields = map[string]any{}
	}
	p.Fields[key] = value
}

// ----------------------- typed page shapes -----------------------

// HomepageContent is the known shape of the "homepage" section.
type HomepageContent struct {
	HeroTitle    string
	Tagline      string
	HeroSubtitle string
	IntroHeading string
	IntroText    string
}

// HomepageFrom extracts the homepage shape, defaulting missing fields.
func HomepageFrom(doc PageContent) HomepageContent {
	return HomepageContent{
		HeroTitle:    doc.String("hero_title", "Ambica Wedding Decor & Planner"),
		Tagline:      doc.String("tagline", "Crafting Timeless Elegance for Every Special Occasion"),
		HeroSubtitle: doc.String("hero_subtitle", ""),
		IntroHeading: doc.String("intro_heading", "Creating Unforgettable Memories"),
		IntroText:    doc.String("intro_text", ""),
	}
}

// AboutContent is the known shape of the "about" section.
type AboutContent struct {
	Title      string
	Subtitle   string
	Paragraphs []string
	Values     []TitledRecord
}

// AboutFrom extracts the about-page shape, defaulting missing fields.
func AboutFrom(doc PageContent) AboutContent {
	return AboutContent{
		Title:      doc.String("title", "Our Story"),
		Subtitle:   doc.String("subtitle", ""),
		Paragraphs: doc.Strings("paragraphs"),
		Values:     doc.Records("values"),
	}
}

// LocationContent is the known shape of the "location" section.
type LocationContent struct {
	City            string
	State           string
	Address         string
	ServiceAreas    string
	Phone           string
	Email           string
	GoogleMapsEmbed string
}

// LocationFrom extracts the location shape, defaulting missing fields.
func LocationFrom(doc PageContent) LocationContent {
	return LocationContent{
		City:            doc.String("city", ""),
		State:           doc.String("state", ""),
		Address:         doc.String("address", ""),
		ServiceAreas:    doc.String("serviceAreas", ""),
		Phone:           doc.String("phone", ""),
		Email:           doc.String("email", ""),
		GoogleMapsEmbed: doc.String("googleMapsEmbed", ""),
	}
}
