package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle).
// Every connected staff dashboard receives every message.
type Broadcaster interface {
	Broadcast(msgType string, payload interface{})
}
