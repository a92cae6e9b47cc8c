package handlers

import (
	"fmt"
	"log"
	"net/http"

	"catalog/internal/hub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSHandler upgrades clients onto the notification hub and runs the chat loop.
type WSHandler struct {
	hub      *hub.Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(h *hub.Hub) *WSHandler {
	return &WSHandler{
		hub: h,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles GET /ws/:client_id. The connection stays registered until the
// read loop ends; every inbound message is echoed privately and broadcast
// with sender attribution.
func (h *WSHandler) Serve(c *gin.Context) {
	id, ok := parseID(c, "client_id")
	if !ok {
		return
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: upgrade failed for client #%d: %v", id, err)
		return
	}

	client := hub.NewClient(id, conn)
	h.hub.Register(client)
	h.hub.Broadcast(fmt.Sprintf("Client #%d joined the chat", id))

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			// disconnect or read failure, either way the client is gone
			h.hub.Unregister(client)
			h.hub.Broadcast(fmt.Sprintf("Client #%d left the chat", id))
			return
		}
		if err := h.hub.Send(client, "You wrote: "+string(msg)); err != nil {
			log.Printf("ws: %v", err)
			h.hub.Unregister(client)
			h.hub.Broadcast(fmt.Sprintf("Client #%d left the chat", id))
			return
		}
		h.hub.Broadcast(fmt.Sprintf("Client #%d says: %s", id, msg))
	}
}
