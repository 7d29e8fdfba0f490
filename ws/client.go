package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	hub     *Hub
	channel string
	conn    *websocket.Conn
	send    chan []byte
	closed  sync.Once
}

// enqueue hands a message to the write pump. Reports false when the buffer is
// full; the message is dropped in that case.
func (c *Client) enqueue(data []byte) bool {
	defer func() {
		// Send on a closed channel means the client unregistered mid-broadcast.
		recover()
	}()
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closed.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

func (c *Client) writePump() {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			c.hub.unregister(c)
			return
		}
	}
}

func (c *Client) readPump() {
	defer c.hub.unregister(c)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			c.enqueue(mustMarshal(map[string]string{
				"type":    "error",
				"message": "invalid message format",
			}))
			continue
		}

		if msg.Type == "get_orders" && c.channel == ChannelOrders && c.hub.OrdersProvider != nil {
			orders, err := c.hub.OrdersProvider()
			if err != nil {
				c.hub.log.WithError(err).Error("failed to load orders for subscriber")
				continue
			}
			c.enqueue(mustMarshal(map[string]interface{}{
				"type":   "orders_data",
				"orders": orders,
			}))
		}
	}
}
