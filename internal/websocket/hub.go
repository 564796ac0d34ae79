package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"acadreports/internal/infrastructure"
	"acadreports/pkg/contracts/events"
)

// TypeConnection is sent by the hub itself. Report events use the types
// chosen by the caller of Broadcast.
const TypeConnection = events.Connection

const (
	defaultPingPeriod   = 30 * time.Second
	defaultPongWait     = 60 * time.Second
	broadcastQueueSize  = 64
	clientSendQueueSize = 256
)

// Message is the envelope of every frame written to clients
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Hub maintains the set of active clients and broadcasts messages to them
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex

	logger  *slog.Logger
	metrics ClientMetrics

	pingPeriod time.Duration
	pongWait   time.Duration

	totalConnections atomic.Int64
	messagesSent     atomic.Int64
	messagesDropped  atomic.Int64
}

// HubOption configures a Hub
type HubOption func(*Hub)

// WithClientMetrics reports connect and disconnect events to m
func WithClientMetrics(m ClientMetrics) HubOption {
	return func(h *Hub) { h.metrics = m }
}

// WithKeepalive sets the ping period and the pong deadline of every client.
// pingPeriod must be less than pongWait.
func WithKeepalive(pingPeriod, pongWait time.Duration) HubOption {
	return func(h *Hub) {
		if pingPeriod > 0 && pongWait > pingPeriod {
			h.pingPeriod = pingPeriod
			h.pongWait = pongWait
		}
	}
}

// NewHub creates a new Hub. Run must be called for it to deliver messages.
func NewHub(logger *slog.Logger, opts ...HubOption) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	h := &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, broadcastQueueSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.With(slog.String("component", "websocket.hub")),
		pingPeriod: defaultPingPeriod,
		pongWait:   defaultPongWait,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run delivers registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			n := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.recordClients(-int64(n))
			h.logger.Info("hub stopped", slog.Int("disconnected_clients", n))
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			count := len(h.clients)
			h.mu.Unlock()
			h.totalConnections.Add(1)
			h.recordClients(1)

			h.logger.Info("client registered",
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr),
				slog.Int("total_clients", count),
			)

			if msg, err := h.encode(TypeConnection, events.ConnectionData{
				Status:   "connected",
				ClientID: client.id,
			}); err == nil {
				select {
				case client.send <- msg:
				default:
					h.logger.Warn("connection message dropped", slog.String("client_id", client.id))
				}
			}

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.mu.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			for _, client := range clients {
				select {
				case client.send <- message:
					h.messagesSent.Add(1)
				default:
					h.logger.Warn("client send buffer full, disconnecting",
						slog.String("client_id", client.id))
					h.remove(client)
				}
			}
		}
	}
}

// Broadcast sends a {type, data, timestamp} message to every client.
// It never blocks: when the queue is full or the hub has stopped the message is dropped.
func (h *Hub) Broadcast(messageType string, data interface{}) {
	msg, err := h.encode(messageType, data)
	if err != nil {
		h.logger.Error("failed to marshal broadcast",
			slog.String("type", messageType),
			slog.String("error", err.Error()),
		)
		return
	}

	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.broadcast <- msg:
	default:
		h.messagesDropped.Add(1)
		h.logger.Warn("broadcast queue full, message dropped", slog.String("type", messageType))
	}
}

// Register adds client to the hub. It returns false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stats returns hub counters for diagnostics
func (h *Hub) Stats() map[string]int64 {
	return map[string]int64{
		"active_clients":    int64(h.ClientCount()),
		"total_connections": h.totalConnections.Load(),
		"messages_sent":     h.messagesSent.Load(),
		"messages_dropped":  h.messagesDropped.Load(),
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	close(client.send)
	count := len(h.clients)
	h.mu.Unlock()
	h.recordClients(-1)

	h.logger.Info("client unregistered",
		slog.String("client_id", client.id),
		slog.Int("total_clients", count),
		slog.Duration("connection_duration", time.Since(client.connectedAt)),
	)
}

func (h *Hub) encode(messageType string, data interface{}) ([]byte, error) {
	return json.Marshal(Message{
		Type:      messageType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Hub) recordClients(delta int64) {
	if h.metrics != nil && delta != 0 {
		h.metrics.RecordWebSocketClients(context.Background(), delta)
	}
}
