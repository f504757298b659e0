// Package websocket - websocket/globals.go
package websocket

import (
	"sync"
)

// broadcast is the channel all outbound gallery frames funnel through.
var broadcast = make(chan []byte, 64)

// connections tracks every active viewer connection.
var (
	connections = make(map[*Connection]bool)
	connMutex   = &sync.Mutex{}
)

// stateMutex serialises every mutation of viewer gallery state; the
// input handlers and the autoplay tickers share it so neither ever acts
// on a half-updated modal.
var stateMutex = &sync.Mutex{}
