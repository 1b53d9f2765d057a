// SPDX-License-Identifier: MIT
package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	applog "dwflag/internal/log"
)

// WebSocketTransport implements the Transport interface by broadcasting
// flag-run summaries as JSON to connected WebSocket clients. It feeds
// visualization frontends; any client may subscribe on /flags.
type WebSocketTransport struct {
	addr      string
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex
	broadcast chan any
	server    *http.Server
	done      chan struct{}
	closeOnce sync.Once
}

// NewWebSocketTransport creates a WebSocketTransport listening on addr
// and starts its HTTP server and broadcast loop.
func NewWebSocketTransport(addr string) *WebSocketTransport {
	wst := &WebSocketTransport{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local visualization clients only
			},
		},
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan any, 64),
		done:      make(chan struct{}),
	}

	wst.start()
	return wst
}

func (wst *WebSocketTransport) start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/flags", wst.handleWebSocket)

	wst.server = &http.Server{
		Addr:    wst.addr,
		Handler: mux,
	}

	go func() {
		applog.Infof("transport: WebSocket server listening on %s", wst.addr)
		if err := wst.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			applog.Errorf("transport: WebSocket server error: %v", err)
		}
	}()

	go wst.handleBroadcasts()
}

// handleWebSocket upgrades HTTP connections and registers the client.
func (wst *WebSocketTransport) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := wst.upgrader.Upgrade(w, r, nil)
	if err != nil {
		applog.Errorf("transport: WebSocket upgrade error: %v", err)
		return
	}

	wst.clientsMu.Lock()
	wst.clients[conn] = true
	total := len(wst.clients)
	wst.clientsMu.Unlock()
	applog.Infof("transport: WebSocket client connected, total: %d", total)

	// Drain reads until the client goes away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				wst.removeClient(conn)
				return
			}
		}
	}()
}

func (wst *WebSocketTransport) removeClient(conn *websocket.Conn) {
	wst.clientsMu.Lock()
	if wst.clients[conn] {
		delete(wst.clients, conn)
		conn.Close()
	}
	total := len(wst.clients)
	wst.clientsMu.Unlock()
	applog.Debugf("transport: WebSocket client disconnected, total: %d", total)
}

// handleBroadcasts fans queued summaries out to every connected client.
func (wst *WebSocketTransport) handleBroadcasts() {
	for {
		select {
		case data := <-wst.broadcast:
			payload, err := json.Marshal(data)
			if err != nil {
				applog.Errorf("transport: WebSocket marshal error: %v", err)
				continue
			}

			wst.clientsMu.Lock()
			for conn := range wst.clients {
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					delete(wst.clients, conn)
					conn.Close()
				}
			}
			wst.clientsMu.Unlock()
		case <-wst.done:
			return
		}
	}
}

// Send queues a summary for broadcast. Never blocks; when the queue is
// full the summary is dropped and logged.
func (wst *WebSocketTransport) Send(data any) error {
	select {
	case wst.broadcast <- data:
	default:
		applog.Warnf("transport: WebSocket broadcast queue full, dropping summary")
	}
	return nil
}

// Close shuts down the broadcast loop, all client connections, and the
// HTTP server.
func (wst *WebSocketTransport) Close() error {
	var err error
	wst.closeOnce.Do(func() {
		close(wst.done)

		wst.clientsMu.Lock()
		for conn := range wst.clients {
			conn.Close()
		}
		wst.clients = make(map[*websocket.Conn]bool)
		wst.clientsMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err = wst.server.Shutdown(ctx)
	})
	return err
}

var _ Transport = (*WebSocketTransport)(nil)
