package websocket

import (
	"context"
	"time"
)

// Connection is the subset of a gorilla connection used by Client
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(string) error)
	RemoteAddr() string
}

// ClientMetrics records the number of connected clients
type ClientMetrics interface {
	RecordWebSocketClients(ctx context.Context, delta int64)
}
