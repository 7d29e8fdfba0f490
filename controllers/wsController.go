package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"cresly-pos/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboard and relay run on the LAN without an origin the server knows.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func ServeOrdersChannel(hub *ws.Hub) gin.HandlerFunc {
	return serveChannel(hub, ws.ChannelOrders)
}

func ServePrintingChannel(hub *ws.Hub) gin.HandlerFunc {
	return serveChannel(hub, ws.ChannelPrinting)
}

func serveChannel(hub *ws.Hub, channel string) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
			return
		}
		hub.Register(channel, conn)
	}
}
