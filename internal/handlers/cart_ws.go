package handlers

import (
	"log"
	"net/http"
	"time"

	"yekzen_backend/internal/cart"
	"yekzen_backend/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// All origins allowed; CORS is enforced at the HTTP layer.
		return true
	},
}

// GET /api/cart/ws — pushes the cart summary to the client whenever another
// session mutates the same user's cart.
func CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	pubsub := database.Redis.Subscribe(ctx, "cart:"+userID)
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(gin.H{"type": "connected"})

	store := cartStore()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			items, err := store.Get(ctx, userID)
			if err != nil {
				log.Printf("❌ Cart read failed for ws push: %v", err)
				continue
			}

			if err := conn.WriteJSON(gin.H{
				"type":    "cart_updated",
				"items":   items,
				"summary": cart.Summarize(items),
			}); err != nil {
				return
			}
		case <-time.After(30 * time.Second):
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
