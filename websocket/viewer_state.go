// Package websocket: per-viewer, in-memory gallery modal state.
// File: websocket/viewer_state.go
package websocket

import (
	"sync"

	"ambica-decor/gallery"
	"ambica-decor/logger"
	"ambica-decor/models"
)

// ViewerState holds one connected viewer's modal state. The autoplay
// ticker and the input handlers all read the same instance through the
// state provider, so they always observe the current index rather than a
// copy captured when the modal opened.
type ViewerState struct {
	ViewerID string
	Gallery  gallery.State

	// autoplay bookkeeping: Active gates the ticker, Generation lets a
	// stale ticker from a previous open detect it has been superseded.
	AutoplayActive     bool
	AutoplayGeneration int

	// touch tracking for swipe detection
	TouchActive bool
	TouchStartX float64
}

// StateProvider is an interface for fetching ViewerState objects.
type StateProvider interface {
	GetViewerState(viewerID string) *ViewerState
	DropViewerState(viewerID string)
}

// realStateProvider is the persistent in-memory StateProvider.
type realStateProvider struct {
	mu    sync.Mutex
	state map[string]*ViewerState
}

// DefaultStateProvider is the provider the live handlers use.
var DefaultStateProvider StateProvider = &realStateProvider{
	state: make(map[string]*ViewerState),
}

// GetViewerState returns the persistent state for the given viewer,
// creating a closed-modal state on first access.
func (r *realStateProvider) GetViewerState(viewerID string) *ViewerState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.state[viewerID]; ok {
		return s
	}
	logger.Debug.Printf("Creating new ViewerState for viewer: %s", viewerID)
	s := &ViewerState{ViewerID: viewerID}
	r.state[viewerID] = s
	return s
}

// DropViewerState removes a viewer's state, used when the connection
// goes away so nothing operates on a torn-down view.
func (r *realStateProvider) DropViewerState(viewerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.state, viewerID)
}

// ------------------ event lookup ------------------

// EventLookup resolves an event identifier against the client-held event
// list (the showcase page's last successful fetch). The gallery performs
// no server round-trip once the modal is open.
type EventLookup func(eventID string) (models.Event, bool)

var (
	eventLookup   EventLookup
	eventLookupMu sync.Mutex
)

// SetEventLookup installs the lookup the modal uses to bind an event.
func SetEventLookup(lookup EventLookup) {
	eventLookupMu.Lock()
	defer eventLookupMu.Unlock()
	eventLookup = lookup
}

// lookupEvent resolves an event, returning false when no lookup is
// installed or the identifier is stale.
func lookupEvent(eventID string) (models.Event, bool) {
	eventLookupMu.Lock()
	lookup := eventLookup
	eventLookupMu.Unlock()
	if lookup == nil {
		return models.Event{}, false
	}
	return lookup(eventID)
}
