package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	ChannelOrders   = "orders"
	ChannelPrinting = "printing"
)

// Hub fans order events out to dashboard clients and print jobs out to the
// relay. Sends are at-most-once: a subscriber whose buffer is full simply
// misses the message, and nothing is retried.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Client]struct{}
	log         *logrus.Logger

	// OrdersProvider answers a client's get_orders request with the current
	// day's serialized orders. Wired in main.
	OrdersProvider func() (interface{}, error)
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]map[*Client]struct{}),
		log:         log,
	}
}

// Register attaches a websocket connection to a channel and starts its pumps.
func (h *Hub) Register(channel string, conn *websocket.Conn) *Client {
	client := &Client{
		hub:     h,
		channel: channel,
		conn:    conn,
		send:    make(chan []byte, 32),
	}

	h.mu.Lock()
	if h.subscribers[channel] == nil {
		h.subscribers[channel] = make(map[*Client]struct{})
	}
	h.subscribers[channel][client] = struct{}{}
	h.mu.Unlock()

	go client.writePump()
	go client.readPump()

	client.enqueue(mustMarshal(map[string]string{
		"type":    "connection_established",
		"channel": channel,
	}))
	return client
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if clients, ok := h.subscribers[c.channel]; ok {
		delete(clients, c)
	}
	h.mu.Unlock()
	c.close()
}

// Broadcast sends a message to every subscriber of a channel without ever
// blocking the caller.
func (h *Hub) Broadcast(channel string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		h.log.WithError(err).Error("failed to marshal broadcast message")
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.subscribers[channel]))
	for c := range h.subscribers[channel] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.enqueue(data) {
			h.log.WithField("channel", channel).Warn("subscriber buffer full, message dropped")
		}
	}
}

// SubscriberCount reports the live subscribers of one channel.
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[channel])
}

func (h *Hub) BroadcastOrders(message interface{}) {
	h.Broadcast(ChannelOrders, message)
}

func (h *Hub) DispatchPrintJob(content []string, printers []string) {
	h.Broadcast(ChannelPrinting, map[string]interface{}{
		"type":     "print_job",
		"content":  content,
		"printers": printers,
	})
}

func mustMarshal(v interface{}) []byte {
	data, _ := json.Marshal(v)
	return data
}
