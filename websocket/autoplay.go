// Package websocket manages the gallery autoplay timer.
// File: websocket/autoplay.go
//
// One cancellable ticker runs per viewer while their modal is open. The
// ticker never captures gallery state: every tick it re-fetches the
// viewer's live state through the provider, so it always advances the
// current index even after keyboard or swipe input moved it.
package websocket

import (
	"time"

	"ambica-decor/gallery"
	"ambica-decor/logger"
)

// AutoplayManager owns the per-viewer autoplay tickers.
type AutoplayManager struct {
	Provider  StateProvider // Provides access to live viewer state
	Messenger Messenger     // Pushes showImage frames
	Interval  time.Duration // Time between automatic advances
}

// DefaultAutoplayManager is the instance the live handlers use.
var DefaultAutoplayManager *AutoplayManager

func init() {
	DefaultAutoplayManager = &AutoplayManager{
		Provider:  DefaultStateProvider,
		Messenger: defaultMessenger,
		Interval:  gallery.AutoplayInterval,
	}
}

// Start arms autoplay for a viewer. A previous ticker for the same
// viewer is superseded by bumping the generation; it exits on its next
// tick without touching the new state.
func (m *AutoplayManager) Start(viewerID string) {
	stateMutex.Lock()
	st := m.Provider.GetViewerState(viewerID)
	st.AutoplayActive = true
	st.AutoplayGeneration++
	generation := st.AutoplayGeneration
	stateMutex.Unlock()

	logger.Debug.Printf("Autoplay armed for viewer %s (generation %d)", viewerID, generation)

	ticker := time.NewTicker(m.Interval)
	go func() {
		defer ticker.Stop()
		for range ticker.C {
			stateMutex.Lock()
			// re-fetch, never reuse: the state may have been replaced
			st := m.Provider.GetViewerState(viewerID)
			if !st.AutoplayActive || st.AutoplayGeneration != generation || !st.Gallery.Open {
				stateMutex.Unlock()
				logger.Debug.Printf("Autoplay ticker exiting for viewer %s (generation %d)", viewerID, generation)
				return
			}
			st.Gallery.Next()
			frame := showImageFrame(st)
			stateMutex.Unlock()

			m.Messenger.SendToViewer(viewerID, frame)
		}
	}()
}

// Stop disarms autoplay for a viewer. The ticker observes the flag on
// its next tick and exits; no further frames are pushed.
func (m *AutoplayManager) Stop(viewerID string) {
	stateMutex.Lock()
	defer stateMutex.Unlock()
	st := m.Provider.GetViewerState(viewerID)
	if !st.AutoplayActive {
		return
	}
	st.AutoplayActive = false
	logger.Debug.Printf("Autoplay disarmed for viewer %s", viewerID)
}

// showImageFrame builds the outbound frame describing the image under
// the viewer's cursor. Caller holds whatever lock guards st.
func showImageFrame(st *ViewerState) map[string]any {
	image, ok := st.Gallery.CurrentImage()
	if !ok {
		return map[string]any{"action": "galleryClosed"}
	}
	return map[string]any{
		"action":  "showImage",
		"eventId": st.Gallery.Selected.EventID,
		"index":   st.Gallery.Index,
		"count":   len(st.Gallery.Selected.Images),
		"image":   image,
	}
}
