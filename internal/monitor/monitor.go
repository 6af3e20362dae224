package monitor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/liqmon/liqmon/internal/feed"
	"github.com/liqmon/liqmon/internal/model"
	"github.com/liqmon/liqmon/internal/stats"
)

// Config configures a Monitor.
type Config struct {
	HistoryCapacity int // Max retained events (default 200)
	PageSize        int // Rows per page (default 20)
}

// DefaultConfig returns the reference capacity and page size.
func DefaultConfig() Config {
	return Config{
		HistoryCapacity: 200,
		PageSize:        20,
	}
}

// ViewState is everything the render surface may observe, captured at one
// instant: buffer size, the current page, connection status, and session
// totals. It is a detached value; holding it across later pushes is safe.
type ViewState struct {
	SessionID string           `json:"session_id"`
	Status    string           `json:"status"`
	Events    int              `json:"events"`
	Capacity  int              `json:"capacity"`
	Page      Page             `json:"page"`
	Totals    stats.Totals     `json:"totals"`
	Feed      feed.ClientStats `json:"feed"`
}

// Monitor owns the ingestion pipeline: decode, identity, history, totals.
// Ingestion runs on a single goroutine (Run); the render paths read
// snapshots concurrently via View.
type Monitor struct {
	cfg    Config
	logger *slog.Logger
	client feed.Client

	sessionID uuid.UUID
	tracker   *stats.Tracker

	seq  Sequencer
	hist *History

	// Pagination cursor, mutated only by the navigation handler.
	pageMu sync.Mutex
	page   PageState
}

// New creates a Monitor fed by client. A nil client is allowed for tests
// that drive Ingest directly.
func New(cfg Config, client feed.Client, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.HistoryCapacity < 1 {
		cfg.HistoryCapacity = DefaultConfig().HistoryCapacity
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultConfig().PageSize
	}

	return &Monitor{
		cfg:       cfg,
		logger:    logger,
		client:    client,
		sessionID: uuid.New(),
		tracker:   stats.NewTracker(),
		hist:      NewHistory(cfg.HistoryCapacity),
		page:      NewPageState(cfg.PageSize),
	}
}

// SessionID returns this session's identifier.
func (m *Monitor) SessionID() uuid.UUID {
	return m.sessionID
}

// Run consumes frames from the feed until ctx is canceled or the frame
// channel closes. Decode failures are logged and dropped; they never stop
// the loop.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor started",
		"session_id", m.sessionID,
		"capacity", m.cfg.HistoryCapacity,
		"page_size", m.cfg.PageSize,
	)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopped", "session_id", m.sessionID)
			return ctx.Err()
		case frame, ok := <-m.client.Frames():
			if !ok {
				m.logger.Info("frame channel closed", "session_id", m.sessionID)
				return nil
			}
			m.Ingest(frame.Data)
		}
	}
}

// Ingest processes one raw frame: decode, assign identity, push, count.
// Returns the decode error for observability; the stream continues either way.
func (m *Monitor) Ingest(raw []byte) error {
	ev, err := model.Decode(raw)
	if err != nil {
		m.tracker.RecordDecodeFailure()
		m.logger.Warn("dropping malformed frame", "error", err)
		return err
	}

	entry := m.seq.Assign(ev)
	m.hist.Push(entry)
	m.tracker.RecordEvent(ev)

	m.logger.Debug("event ingested",
		"key", entry.Key.String(),
		"symbol", ev.Symbol,
		"side", ev.Side,
		"status", ev.Status,
	)
	return nil
}

// NextPage advances the pagination cursor one page, clamped to the last page
// of the current history.
func (m *Monitor) NextPage() {
	count := PageCount(m.hist.Len(), m.cfg.PageSize)

	m.pageMu.Lock()
	defer m.pageMu.Unlock()
	m.page.Next(count)
}

// PrevPage moves the pagination cursor back one page, stopping at page 0.
func (m *Monitor) PrevPage() {
	m.pageMu.Lock()
	defer m.pageMu.Unlock()
	m.page.Prev()
}

// View derives the current render state. Safe to call from any goroutine.
func (m *Monitor) View() ViewState {
	snap := m.hist.Snapshot()

	m.pageMu.Lock()
	state := m.page
	m.pageMu.Unlock()

	status := feed.StatusClosed
	var feedStats feed.ClientStats
	if m.client != nil {
		status = m.client.Status()
		feedStats = m.client.Stats()
	}

	return ViewState{
		SessionID: m.sessionID.String(),
		Status:    status.String(),
		Events:    len(snap),
		Capacity:  m.hist.Cap(),
		Page:      DerivePage(snap, state),
		Totals:    m.tracker.Totals(),
		Feed:      feedStats,
	}
}
