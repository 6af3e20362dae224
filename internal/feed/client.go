package feed

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Client is a self-healing connection to the force-order stream.
type Client interface {
	// Start begins connecting and reading. Non-blocking.
	Start(ctx context.Context) error

	// Stop gracefully closes the connection and stops reconnecting.
	Stop() error

	// Frames returns the channel of raw frames in arrival order.
	Frames() <-chan RawFrame

	// Status returns the current connection status.
	Status() Status

	// Stats returns current feed counters.
	Stats() ClientStats
}

// client implements the Client interface.
type client struct {
	cfg    Config
	logger *slog.Logger

	frames chan RawFrame
	done   chan struct{}
	wg     sync.WaitGroup

	status atomic.Int32

	mu         sync.Mutex
	conn       *websocket.Conn
	started    bool
	closed     bool
	lastPingAt time.Time

	framesReceived atomic.Int64
	framesDropped  atomic.Int64
	reconnects     atomic.Int64
}

// NewClient creates a new feed client.
func NewClient(cfg Config, logger *slog.Logger) Client {
	if logger == nil {
		logger = slog.Default()
	}

	c := &client{
		cfg:    cfg,
		logger: logger,
		frames: make(chan RawFrame, cfg.BufferSize),
		done:   make(chan struct{}),
	}
	c.status.Store(int32(StatusConnecting))
	return c
}

// Start begins the connect/read/reconnect loop.
func (c *client) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	c.mu.Unlock()

	c.wg.Add(1)
	go c.run(ctx)

	return nil
}

// Stop gracefully shuts down.
func (c *client) Stop() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conn := c.conn
	c.mu.Unlock()

	close(c.done)

	if conn != nil {
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		conn.Close()
	}

	c.wg.Wait()
	c.setStatus(StatusClosed)
	return nil
}

// Frames returns the frames channel.
func (c *client) Frames() <-chan RawFrame {
	return c.frames
}

// Status returns the current connection status.
func (c *client) Status() Status {
	return Status(c.status.Load())
}

// Stats returns current feed counters.
func (c *client) Stats() ClientStats {
	return ClientStats{
		FramesReceived: c.framesReceived.Load(),
		FramesDropped:  c.framesDropped.Load(),
		Reconnects:     c.reconnects.Load(),
	}
}

// run is the connect/read/reconnect loop. It owns the status value: the
// status is Connecting while dialing or backing off, Open while reading,
// and Closed only after shutdown.
func (c *client) run(ctx context.Context) {
	defer c.wg.Done()
	defer c.setStatus(StatusClosed)

	delay := c.cfg.ReconnectBaseDelay
	first := true

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		default:
		}

		c.setStatus(StatusConnecting)

		conn, err := c.dial(ctx)
		if err != nil {
			c.logger.Warn("feed dial failed",
				"url", c.cfg.URL,
				"error", err,
				"retry_in", delay,
			)
			if !c.sleep(ctx, delay) {
				return
			}
			delay = backoff(delay, c.cfg.ReconnectMaxDelay)
			continue
		}

		// Stop may have raced the dial; make sure the fresh connection
		// does not outlive the client.
		select {
		case <-ctx.Done():
			conn.Close()
			return
		case <-c.done:
			conn.Close()
			return
		default:
		}

		if !first {
			c.reconnects.Add(1)
		}
		first = false
		delay = c.cfg.ReconnectBaseDelay

		c.setStatus(StatusOpen)
		c.logger.Info("feed connected", "url", c.cfg.URL)

		c.readUntilClosed(conn)

		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		conn.Close()

		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		default:
			c.logger.Warn("feed disconnected, reconnecting", "retry_in", delay)
			if !c.sleep(ctx, delay) {
				return
			}
		}
	}
}

// dial establishes one WebSocket connection and installs ping/pong handlers.
func (c *client) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: c.cfg.HandshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.conn = conn
	c.lastPingAt = time.Now()
	c.mu.Unlock()

	// Binance sends pings; echo the payload back as pong.
	conn.SetPingHandler(func(data string) error {
		c.mu.Lock()
		c.lastPingAt = time.Now()
		c.mu.Unlock()

		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(data),
			time.Now().Add(c.cfg.WriteTimeout),
		)
	})

	conn.SetPongHandler(func(string) error {
		c.mu.Lock()
		c.lastPingAt = time.Now()
		c.mu.Unlock()
		return nil
	})

	return conn, nil
}

// readUntilClosed reads frames into the frames channel until the
// connection drops or the client is stopped.
func (c *client) readUntilClosed(conn *websocket.Conn) {
	heartbeatDone := make(chan struct{})
	defer close(heartbeatDone)
	go c.heartbeatLoop(conn, heartbeatDone)

	for {
		_, data, err := conn.ReadMessage()
		receivedAt := time.Now() // Capture timestamp immediately

		if err != nil {
			select {
			case <-c.done:
			default:
				c.logger.Debug("feed read error", "error", err)
			}
			return
		}

		c.framesReceived.Add(1)

		frame := RawFrame{
			Data:       data,
			ReceivedAt: receivedAt,
		}

		select {
		case c.frames <- frame:
		case <-c.done:
			return
		default:
			c.framesDropped.Add(1)
			c.logger.Warn("frame buffer full, dropping frame")
		}
	}
}

// heartbeatLoop sends keepalive pings and closes stale connections.
func (c *client) heartbeatLoop(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-c.done:
			// Unblock the reader so run() can exit.
			conn.Close()
			return
		case <-ticker.C:
			deadline := time.Now().Add(c.cfg.WriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, []byte("keepalive"), deadline); err != nil {
				c.logger.Debug("failed to send ping", "error", err)
			}

			c.mu.Lock()
			lastPing := c.lastPingAt
			c.mu.Unlock()

			if time.Since(lastPing) > c.cfg.PingTimeout {
				c.logger.Warn("no ping received, connection stale",
					"last_ping", lastPing,
					"timeout", c.cfg.PingTimeout,
				)
				// Break the blocked ReadMessage; run() reconnects.
				conn.Close()
				return
			}
		}
	}
}

// sleep waits for d unless the client is stopped first.
func (c *client) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-c.done:
		return false
	case <-timer.C:
		return true
	}
}

func (c *client) setStatus(s Status) {
	old := Status(c.status.Swap(int32(s)))
	if old != s {
		c.logger.Debug("feed status changed", "from", old.String(), "to", s.String())
	}
}

// backoff doubles d up to max.
func backoff(d, max time.Duration) time.Duration {
	d *= 2
	if d > max {
		return max
	}
	return d
}
