package ws

import (
	"net/http"
	"strconv"
	"time"

	"duit/config"
	"duit/internal/auth"
	"duit/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// UpgradeRoomWS subscribes an authenticated client to a chat room's message
// stream. Token and room_id come as query parameters since browsers cannot
// set headers on websocket dials.
func UpgradeRoomWS(cfg *config.JWTConfig, hub *RoomHub, roomRepo *repository.RoomRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}
		roomID64, err := strconv.ParseUint(c.Query("room_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "room_id required"})
			return
		}
		if _, err := roomRepo.GetOwned(claims.UserID, uint(roomID64)); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"message": "forbidden"})
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		cl := &client{UserID: claims.UserID, Send: make(chan []byte, 256)}
		r := hub.getOrCreate(uint(roomID64))
		r.join(cl)
		defer r.leave(cl)

		go writePump(cl, conn)
		readPump(conn)
	}
}

func writePump(c *client, conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains the connection until the peer goes away.
func readPump(conn *websocket.Conn) {
	conn.SetReadLimit(4096)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
