package config

import "time"

// MonitorConfig is the root configuration for a liqmon instance.
type MonitorConfig struct {
	Instance InstanceConfig `yaml:"instance"`
	Feed     FeedConfig     `yaml:"feed"`
	History  HistoryConfig  `yaml:"history"`
	View     ViewConfig     `yaml:"view"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// InstanceConfig identifies this monitor instance.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// FeedConfig holds upstream WebSocket feed settings.
type FeedConfig struct {
	URL                string        `yaml:"url"`                  // wss endpoint for the force-order stream
	HandshakeTimeout   time.Duration `yaml:"handshake_timeout"`    // Dial timeout
	ReconnectBaseDelay time.Duration `yaml:"reconnect_base_delay"` // First reconnect wait
	ReconnectMaxDelay  time.Duration `yaml:"reconnect_max_delay"`  // Backoff ceiling
	PingInterval       time.Duration `yaml:"ping_interval"`        // Keepalive ping period
	PingTimeout        time.Duration `yaml:"ping_timeout"`         // Max silence before the connection is stale
	WriteTimeout       time.Duration `yaml:"write_timeout"`        // Write deadline for control frames
	BufferSize         int           `yaml:"buffer_size"`          // Frame channel buffer size
}

// HistoryConfig holds bounded event history settings.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"` // Max retained events, oldest evicted first
}

// ViewConfig holds pagination settings for the operator view.
type ViewConfig struct {
	PageSize int `yaml:"page_size"` // Rows per page
}

// ServerConfig holds the debug/health HTTP server settings.
type ServerConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path; empty = stderr (headless mode only)
}
