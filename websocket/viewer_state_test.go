// file: websocket/viewer_state_test.go
package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ambica-decor/models"
)

// Test: first access creates a closed-modal state; later accesses reuse it
func TestStateProvider_GetCreatesOnce(t *testing.T) {
	provider := &realStateProvider{state: map[string]*ViewerState{}}

	first := provider.GetViewerState("v1")
	assert.Equal(t, "v1", first.ViewerID)
	assert.False(t, first.Gallery.Open)

	first.Gallery.Index = 2
	again := provider.GetViewerState("v1")
	assert.Same(t, first, again)
	assert.Equal(t, 2, again.Gallery.Index)
}

// Test: dropping a viewer forgets their state entirely
func TestStateProvider_Drop(t *testing.T) {
	provider := &realStateProvider{state: map[string]*ViewerState{}}

	provider.GetViewerState("v1").Gallery.Index = 5
	provider.DropViewerState("v1")

	fresh := provider.GetViewerState("v1")
	assert.Equal(t, 0, fresh.Gallery.Index)
}

// Test: lookup resolves against the installed source only
func TestLookupEvent(t *testing.T) {
	defer SetEventLookup(nil)

	SetEventLookup(nil)
	_, ok := lookupEvent("e1")
	assert.False(t, ok, "no installed lookup resolves nothing")

	SetEventLookup(func(eventID string) (models.Event, bool) {
		if eventID == "e1" {
			return models.Event{EventID: "e1"}, true
		}
		return models.Event{}, false
	})

	event, ok := lookupEvent("e1")
	assert.True(t, ok)
	assert.Equal(t, "e1", event.EventID)

	_, ok = lookupEvent("stale")
	assert.False(t, ok)
}
