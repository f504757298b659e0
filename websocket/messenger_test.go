// file: websocket/messenger_test.go
package websocket

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var startFanOutOnce sync.Once

// Test: a showcase change is queued as one unfiltered frame
func TestBroadcastShowcaseUpdated_Frame(t *testing.T) {
	messenger := &recordingMessenger{}
	prev := defaultMessenger
	defaultMessenger = messenger
	defer func() { defaultMessenger = prev }()

	BroadcastShowcaseUpdated()

	raw := messenger.lastRaw()
	assert.NotNil(t, raw)

	var frame map[string]any
	assert.NoError(t, json.Unmarshal(raw, &frame))
	assert.Equal(t, "showcaseUpdated", frame["action"])
	_, filtered := frame["viewerId"]
	assert.False(t, filtered, "showcase updates address every viewer")
}

// Test: the fan-out loop delivers an unfiltered frame to every connection
func TestBroadcastShowcaseUpdated_FanOut(t *testing.T) {
	startFanOutOnce.Do(func() { go HandleMessages() })
	a := newTestConnection(t, "viewer-fanout-a")
	b := newTestConnection(t, "viewer-fanout-b")

	BroadcastShowcaseUpdated()

	for _, c := range []*Connection{a, b} {
		frame := nextFrame(t, c)
		assert.Equal(t, "showcaseUpdated", frame["action"])
	}
}
