// Package websocket provides the WebSocket server and connection handling
// for the gallery modal: viewers connect, open an event's image carousel,
// and receive frames driven by their input and the autoplay ticker.
// file: websocket/connection.go
package websocket

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"ambica-decor/gallery"
	"ambica-decor/logger"
)

// WSConn is an interface for the WebSocket connection.
type WSConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	ReadMessage() (int, []byte, error)
	Close() error
	RemoteAddr() net.Addr
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
}

// Connection represents a single WebSocket connection for one viewer.
type Connection struct {
	conn     WSConn
	send     chan []byte
	viewerID string
}

// Configuration constants.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 2048
)

// upgrader upgrades HTTP requests to WebSocket connections.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// same-origin pages only; the modal script connects back to us
		return true
	},
}

// GalleryMessage represents the JSON structure of messages from viewers.
type GalleryMessage struct {
	Action  string  `json:"action"`
	EventID string  `json:"eventId,omitempty"`
	Key     string  `json:"key,omitempty"`
	X       float64 `json:"x,omitempty"`
}

// ServeWs upgrades the HTTP request to a WebSocket connection and starts
// the read and write pumps. Each connection gets a viewer identity; the
// client may pin one via ?viewerId= to survive reconnects.
func ServeWs(w http.ResponseWriter, r *http.Request) {
	viewerID := r.URL.Query().Get("viewerId")
	if viewerID == "" {
		viewerID = uuid.NewString()
	}

	logger.Info.Printf("[ServeWs] Upgrading to WS: remoteAddr=%v, viewerId=%q", r.RemoteAddr, viewerID)
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error.Printf("[ServeWs] WebSocket upgrade error: %v", err)
		return
	}

	c := &Connection{
		conn:     wsConn,
		send:     make(chan []byte, 256),
		viewerID: viewerID,
	}

	registerConnection(c)
	PublishGalleryViewers(viewerCount())

	// let the client know which viewer identity it holds
	welcome, _ := json.Marshal(map[string]string{"action": "registered", "viewerId": viewerID})
	c.send <- welcome

	go c.readPump()
	go c.writePump()
}

// readPump handles inbound messages from the viewer.
func (c *Connection) readPump() {
	defer func() {
		// deterministic teardown: the autoplay ticker and the viewer
		// state must not outlive the connection
		DefaultAutoplayManager.Stop(c.viewerID)
		DefaultStateProvider.DropViewerState(c.viewerID)
		unregisterConnection(c)
		PublishGalleryViewers(viewerCount())
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			logger.Warn.Printf("[readPump] Read error from %v: %v", c.conn.RemoteAddr(), err)
			break
		}
		if messageType != websocket.TextMessage {
			logger.Debug.Printf("[readPump] Ignoring non-text messageType=%d", messageType)
			continue
		}

		var gm GalleryMessage
		if err := json.Unmarshal(message, &gm); err != nil {
			logger.Warn.Printf("[readPump] Invalid JSON from %v: %v", c.conn.RemoteAddr(), err)
			continue
		}
		handleIncoming(c, gm)
	}
}

// writePump handles outbound messages to the viewer, including periodic pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				logger.Debug.Printf("[writePump] Send channel closed for %v", c.conn.RemoteAddr())
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn.Printf("[writePump] Error writing to %v: %v", c.conn.RemoteAddr(), err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Warn.Printf("[writePump] Ping error for %v: %v", c.conn.RemoteAddr(), err)
				return
			}
		}
	}
}

// registerConnection adds the given connection to the global connections map.
func registerConnection(c *Connection) {
	connMutex.Lock()
	defer connMutex.Unlock()
	connections[c] = true
}

// unregisterConnection removes the given connection from the global connections map.
func unregisterConnection(c *Connection) {
	connMutex.Lock()
	defer connMutex.Unlock()
	delete(connections, c)
}

// handleIncoming processes an inbound viewer message.
func handleIncoming(c *Connection, gm GalleryMessage) {
	logger.Debug.Printf("[handleIncoming] Action=%s, EventID=%s, Viewer=%s", gm.Action, gm.EventID, c.viewerID)
	switch gm.Action {
	case "openGallery":
		openGallery(c, gm.EventID)
	case "next":
		applyAction(c, gallery.ActionNext)
	case "prev":
		applyAction(c, gallery.ActionPrev)
	case "close":
		applyAction(c, gallery.ActionClose)
	case "keydown":
		applyAction(c, gallery.MapKey(gm.Key))
	case "touchstart":
		stateMutex.Lock()
		st := DefaultStateProvider.GetViewerState(c.viewerID)
		st.TouchActive = true
		st.TouchStartX = gm.X
		stateMutex.Unlock()
	case "touchend":
		stateMutex.Lock()
		st := DefaultStateProvider.GetViewerState(c.viewerID)
		action := gallery.ActionNone
		if st.TouchActive {
			action = gallery.MapSwipe(st.TouchStartX, gm.X)
			st.TouchActive = false
		}
		stateMutex.Unlock()
		applyAction(c, action)
	default:
		logger.Debug.Printf("Unhandled action: %s", gm.Action)
	}
}

// openGallery binds the viewer's modal to an event at index 0 and arms
// autoplay. A stale event identifier closes nothing and reports back.
func openGallery(c *Connection, eventID string) {
	event, ok := lookupEvent(eventID)
	if !ok || len(event.Images) == 0 {
		logger.Warn.Printf("[openGallery] Unknown or empty event %q for viewer %s", eventID, c.viewerID)
		out, _ := json.Marshal(map[string]string{"action": "galleryError", "eventId": eventID})
		sendToViewer(c.viewerID, out)
		return
	}

	stateMutex.Lock()
	st := DefaultStateProvider.GetViewerState(c.viewerID)
	st.Gallery.OpenEvent(event)
	frame := showImageFrame(st)
	stateMutex.Unlock()

	DefaultAutoplayManager.Start(c.viewerID)

	out, _ := json.Marshal(withViewer(frame, c.viewerID))
	sendToViewer(c.viewerID, out)
	logger.Info.Printf("[openGallery] Viewer %s opened event %s (%d images)", c.viewerID, eventID, len(event.Images))
}

// applyAction runs one gallery transition for the viewer and pushes the
// resulting frame. Closing also tears the autoplay ticker down.
func applyAction(c *Connection, action gallery.Action) {
	if action == gallery.ActionNone {
		return
	}

	if action == gallery.ActionClose {
		DefaultAutoplayManager.Stop(c.viewerID)
	}

	stateMutex.Lock()
	st := DefaultStateProvider.GetViewerState(c.viewerID)
	wasOpen := st.Gallery.Open
	st.Gallery.Apply(action)
	frame := showImageFrame(st)
	stateMutex.Unlock()

	if !wasOpen {
		// next/prev are no-ops without an open modal; nothing to push
		return
	}

	out, _ := json.Marshal(withViewer(frame, c.viewerID))
	sendToViewer(c.viewerID, out)
}

// withViewer tags a frame with the viewer it belongs to.
func withViewer(frame map[string]any, viewerID string) map[string]any {
	frame["viewerId"] = viewerID
	return frame
}
