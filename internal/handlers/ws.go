package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	dashboardClients   = make(map[*websocket.Conn]bool)
	dashboardClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The live dashboard is public, matching the REST read endpoints.
		return true
	},
}

// BroadcastRefresh tells every connected dashboard to re-fetch donation data.
// Called after each donation mutation.
func BroadcastRefresh() {
	dashboardClientsMu.RLock()
	if len(dashboardClients) == 0 {
		dashboardClientsMu.RUnlock()
		return
	}

	clients := make([]*websocket.Conn, 0, len(dashboardClients))
	for conn := range dashboardClients {
		clients = append(clients, conn)
	}
	dashboardClientsMu.RUnlock()

	for _, conn := range clients {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":    "refresh",
			"message": "Donation data updated",
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			removeClient(conn)
			conn.Close()
		}
	}
}

func removeClient(conn *websocket.Conn) {
	dashboardClientsMu.Lock()
	delete(dashboardClients, conn)
	dashboardClientsMu.Unlock()
}

// WebSocket upgrades the connection and keeps it registered for refresh
// broadcasts until the client goes away.
func WebSocket(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)

	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}

	dashboardClientsMu.Lock()
	dashboardClients[conn] = true
	dashboardClientsMu.Unlock()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go pingLoop(conn)

	// Read pump: the dashboard never sends application messages, but the
	// read loop is what notices a closed connection.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	removeClient(conn)
	conn.Close()
}

func pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}
