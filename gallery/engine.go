// Package gallery implements the showcase carousel engine: category
// filtering over the fetched event list and the per-modal image index
// state machine. The package is pure; timers and input transport live in
// the websocket package.
// File: gallery/engine.go
package gallery

import (
	"time"

	"ambica-decor/models"
)

// CategoryAll is the synthetic filter value that clears filtering.
const CategoryAll = "all"

// SwipeThreshold is the horizontal dead zone in pixels. Swipes at or
// below this distance never change the image.
const SwipeThreshold = 50.0

// AutoplayInterval is how often the open modal advances on its own.
const AutoplayInterval = 4 * time.Second

// ------------------ filtering ------------------

// Categories derives the filter set: CategoryAll followed by each
// distinct category in first-seen order.
func Categories(events []models.Event) []string {
	categories := []string{CategoryAll}
	seen := map[string]bool{}
	for _, event := range events {
		if event.Category == "" || seen[event.Category] {
			continue
		}
		seen[event.Category] = true
		categories = append(categories, event.Category)
	}
	return categories
}

// Filter returns the subset of events whose category equals the given
// filter value. CategoryAll returns the input unchanged. Filtering is
// pure and always recomputed from the full list, never destructive.
func Filter(events []models.Event, category string) []models.Event {
	if category == CategoryAll || category == "" {
		return events
	}
	filtered := make([]models.Event, 0, len(events))
	for _, event := range events {
		if event.Category == category {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// ------------------ input mapping ------------------

// Action is a gallery transition requested by user input.
type Action int

// Gallery actions.
const (
	ActionNone Action = iota
	ActionNext
	ActionPrev
	ActionClose
)

// MapKey translates a keyboard key to a gallery action. Bindings are
// only meaningful while the modal is open; State ignores the rest.
func MapKey(key string) Action {
	switch key {
	case "ArrowRight":
		return ActionNext
	case "ArrowLeft":
		return ActionPrev
	case "Escape":
		return ActionClose
	default:
		return ActionNone
	}
}

// MapSwipe translates a horizontal touch gesture into a gallery action.
// A leftward drag (start beyond end) advances, a rightward drag goes
// back; anything within the dead zone is treated as a tap.
func MapSwipe(startX, endX float64) Action {
	switch {
	case startX-endX > SwipeThreshold:
		return ActionNext
	case endX-startX > SwipeThreshold:
		return ActionPrev
	default:
		return ActionNone
	}
}

// ------------------ modal state machine ------------------

// State is the ephemeral per-modal gallery state. Invariant: while the
// modal is open, Index is always in [0, len(Selected.Images)); when
// closed, Selected is nil and Index is meaningless.
type State struct {
	Selected *models.Event
	Index    int
	Open     bool
}

// OpenEvent binds the modal to an event's image sequence at index 0.
func (s *State) OpenEvent(event models.Event) {
	s.Selected = &event
	s.Index = 0
	s.Open = true
}

// Close closes the modal. Filter selection is not gallery state and is
// untouched; reopening starts at index 0 again.
func (s *State) Close() {
	s.Selected = nil
	s.Index = 0
	s.Open = false
}

// Next advances to the following image, wrapping modulo the image count.
// No-op when the modal is closed or the event has no images.
func (s *State) Next() {
	if !s.Open || s.Selected == nil || len(s.Selected.Images) == 0 {
		return
	}
	s.Index = (s.Index + 1) % len(s.Selected.Images)
}

// Prev steps back to the previous image, wrapping modulo the image count.
func (s *State) Prev() {
	if !s.Open || s.Selected == nil || len(s.Selected.Images) == 0 {
		return
	}
	count := len(s.Selected.Images)
	s.Index = (s.Index - 1 + count) % count
}

// Apply dispatches a mapped action onto the state.
func (s *State) Apply(action Action) {
	switch action {
	case ActionNext:
		s.Next()
	case ActionPrev:
		s.Prev()
	case ActionClose:
		s.Close()
	}
}

// CurrentImage returns the image URL under the cursor, or false when the
// modal is closed or empty.
func (s *State) CurrentImage() (string, bool) {
	if !s.Open || s.Selected == nil || len(s.Selected.Images) == 0 {
		return "", false
	}
	return s.Selected.Images[s.Index], true
}
