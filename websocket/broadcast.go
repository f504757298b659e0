// Package websocket handles real-time communication between the gallery
// modal and its viewers.
// file: websocket/broadcast.go
package websocket

import (
	"encoding/json"

	"ambica-decor/logger"
)

// HandleMessages listens on the broadcast channel and distributes frames
// to connections. Frames carrying a viewerId only reach that viewer;
// unfiltered frames reach everyone.
func HandleMessages() {
	for {
		msg := <-broadcast
		PublishBroadcastBacklog(len(broadcast))

		var msgMap map[string]any
		var viewerFilter string

		// attempt to parse the frame for a viewer filter
		if err := json.Unmarshal(msg, &msgMap); err == nil {
			if v, ok := msgMap["viewerId"].(string); ok {
				viewerFilter = v
			}
		}

		connMutex.Lock()
		for c := range connections {
			if viewerFilter != "" && c.viewerID != viewerFilter {
				continue
			}
			select {
			case c.send <- msg:
			default:
				logger.Warn.Printf("Dropping frame for connection %v", c.conn.RemoteAddr())
			}
		}
		connMutex.Unlock()
	}
}

// sendToViewer queues a frame for a single viewer's connections.
func sendToViewer(viewerID string, message []byte) {
	connMutex.Lock()
	defer connMutex.Unlock()
	for c := range connections {
		if c.viewerID == viewerID {
			select {
			case c.send <- message:
			default:
				logger.Warn.Printf("Dropping frame for connection %v", c.conn.RemoteAddr())
			}
		}
	}
}

// viewerCount reports how many connections are currently registered.
func viewerCount() int {
	connMutex.Lock()
	defer connMutex.Unlock()
	return len(connections)
}
