// Package websocket Description: This file contains the implementation
// of the realMessenger struct, which pushes gallery frames to viewers.
// file: websocket/messenger.go
package websocket

import (
	"encoding/json"

	"ambica-decor/logger"
)

var defaultMessenger Messenger = &realMessenger{}

// Messenger is an interface for pushing frames to connected viewers.
type Messenger interface {
	SendToViewer(viewerID string, msg map[string]any)
	BroadcastRaw(msg []byte)
}

type realMessenger struct{}

// --------------- Methods on realMessenger -----------------

// SendToViewer marshals the frame and queues it on the broadcast
// channel tagged with the viewer it belongs to.
func (r *realMessenger) SendToViewer(viewerID string, msg map[string]any) {
	if msg == nil {
		return
	}
	msg["viewerId"] = viewerID
	out, err := json.Marshal(msg)
	if err != nil {
		logger.Error.Printf("realMessenger: Error marshalling frame: %v", err)
		return
	}
	broadcast <- out
}

// BroadcastRaw queues raw bytes for every connected viewer.
func (r *realMessenger) BroadcastRaw(msg []byte) {
	broadcast <- msg
}

// BroadcastShowcaseUpdated tells every connected viewer the showcase
// content changed. The frame carries no viewerId, so the fan-out loop
// delivers it to all connections; the client refreshes its event grid.
func BroadcastShowcaseUpdated() {
	out, err := json.Marshal(map[string]any{"action": "showcaseUpdated"})
	if err != nil {
		logger.Error.Printf("BroadcastShowcaseUpdated: Error marshalling frame: %v", err)
		return
	}
	defaultMessenger.BroadcastRaw(out)
}
