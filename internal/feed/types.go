package feed

import (
	"errors"
	"time"
)

// Errors
var (
	ErrAlreadyStarted  = errors.New("feed already started")
	ErrStaleConnection = errors.New("connection stale (no ping)")
)

// Status is the externally visible connection state.
type Status int32

const (
	StatusConnecting Status = iota
	StatusOpen
	StatusClosed
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// RawFrame wraps one raw text frame with its receive timestamp.
type RawFrame struct {
	Data       []byte    // Raw frame bytes from the WebSocket
	ReceivedAt time.Time // Local timestamp when ReadMessage() returned
}

// Config configures the feed client.
type Config struct {
	URL                string        // WebSocket URL of the force-order stream
	HandshakeTimeout   time.Duration // Dial timeout
	ReconnectBaseDelay time.Duration // First reconnect wait
	ReconnectMaxDelay  time.Duration // Backoff ceiling
	PingInterval       time.Duration // Keepalive ping period
	PingTimeout        time.Duration // Max silence before the connection is considered stale
	WriteTimeout       time.Duration // Write deadline for control frames
	BufferSize         int           // Frame channel buffer size
}

// DefaultConfig returns sensible defaults for the public Binance futures stream.
func DefaultConfig() Config {
	return Config{
		URL:                "wss://fstream.binance.com/ws/!forceOrder@arr",
		HandshakeTimeout:   10 * time.Second,
		ReconnectBaseDelay: 1 * time.Second,
		ReconnectMaxDelay:  60 * time.Second,
		PingInterval:       30 * time.Second,
		PingTimeout:        60 * time.Second,
		WriteTimeout:       5 * time.Second,
		BufferSize:         1024,
	}
}

// ClientStats provides counters about the feed connection.
type ClientStats struct {
	FramesReceived int64 `json:"frames_received"`
	FramesDropped  int64 `json:"frames_dropped"`
	Reconnects     int64 `json:"reconnects"`
}
