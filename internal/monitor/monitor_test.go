package monitor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liqmon/liqmon/internal/feed"
)

// fakeFeed is a canned-frame feed.Client for driving Monitor.Run.
type fakeFeed struct {
	frames chan feed.RawFrame
	status feed.Status
}

func newFakeFeed(status feed.Status) *fakeFeed {
	return &fakeFeed{
		frames: make(chan feed.RawFrame, 64),
		status: status,
	}
}

func (f *fakeFeed) Start(context.Context) error  { return nil }
func (f *fakeFeed) Stop() error                  { return nil }
func (f *fakeFeed) Frames() <-chan feed.RawFrame { return f.frames }
func (f *fakeFeed) Status() feed.Status          { return f.status }
func (f *fakeFeed) Stats() feed.ClientStats      { return feed.ClientStats{} }

func frameFor(symbol string, tradeTime int64) []byte {
	return []byte(fmt.Sprintf(
		`{"e":"forceOrder","E":%d,"o":{"s":%q,"S":"SELL","o":"LIMIT","f":"IOC","q":"1","p":"100","ap":"100","X":"FILLED","l":"1","z":"1","T":%d}}`,
		tradeTime, symbol, tradeTime,
	))
}

func TestMonitor_DecodeResilience(t *testing.T) {
	m := New(DefaultConfig(), nil, nil)

	assert.Error(t, m.Ingest([]byte("not json at all")))
	assert.Error(t, m.Ingest([]byte(`{"e":"forceOrder","E":1}`))) // missing order object
	assert.NoError(t, m.Ingest(frameFor("BTCUSDT", 1693526400120)))

	view := m.View()
	assert.Equal(t, 1, view.Events, "exactly the well-formed frame is buffered")
	assert.Equal(t, int64(2), view.Totals.DecodeFailures)
	assert.Equal(t, int64(1), view.Totals.Accepted)

	// The pipeline keeps working after failures.
	assert.NoError(t, m.Ingest(frameFor("ETHUSDT", 1693526400121)))
	assert.Equal(t, 2, m.View().Events)
}

func TestMonitor_ViewReferenceScenario(t *testing.T) {
	m := New(DefaultConfig(), nil, nil)

	for i := 1; i <= 205; i++ {
		require.NoError(t, m.Ingest(frameFor(fmt.Sprintf("SYM%d", i), int64(1000+i))))
	}

	view := m.View()
	assert.Equal(t, 205, int(view.Totals.Accepted))
	assert.Equal(t, 200, view.Events)
	assert.Equal(t, 200, view.Capacity)
	assert.Equal(t, 10, view.Page.PageCount)

	require.Len(t, view.Page.Rows, 20)
	assert.Equal(t, "SYM205", view.Page.Rows[0].Event.Symbol, "newest event leads the first page")
}

func TestMonitor_SharedTimestampKeepsArrivalOrder(t *testing.T) {
	m := New(DefaultConfig(), nil, nil)

	const ts = int64(1693526400120)
	require.NoError(t, m.Ingest(frameFor("FIRST", ts)))
	require.NoError(t, m.Ingest(frameFor("SECOND", ts)))

	rows := m.View().Page.Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "SECOND", rows[0].Event.Symbol)
	assert.Equal(t, "FIRST", rows[1].Event.Symbol)
	assert.NotEqual(t, rows[0].Key, rows[1].Key)
}

func TestMonitor_Navigation(t *testing.T) {
	m := New(Config{HistoryCapacity: 200, PageSize: 20}, nil, nil)

	for i := 1; i <= 45; i++ {
		require.NoError(t, m.Ingest(frameFor(fmt.Sprintf("SYM%d", i), int64(i))))
	}

	m.PrevPage() // no-op at page 0
	assert.False(t, m.View().Page.CanGoPrev)

	m.NextPage()
	m.NextPage()
	view := m.View()
	assert.Equal(t, 2, view.Page.Index)
	assert.Len(t, view.Page.Rows, 5)
	assert.False(t, view.Page.CanGoNext)

	m.NextPage() // no-op at last page
	assert.Equal(t, 2, m.View().Page.Index)
}

func TestMonitor_ViewWhileDisconnected(t *testing.T) {
	m := New(DefaultConfig(), newFakeFeed(feed.StatusClosed), nil)
	require.NoError(t, m.Ingest(frameFor("BTCUSDT", 1)))

	view := m.View()
	assert.Equal(t, "closed", view.Status)
	assert.Equal(t, 1, view.Events, "history stays browsable while disconnected")
}

func TestMonitor_RunConsumesFrames(t *testing.T) {
	f := newFakeFeed(feed.StatusOpen)
	m := New(DefaultConfig(), f, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	f.frames <- feed.RawFrame{Data: frameFor("BTCUSDT", 1), ReceivedAt: time.Now()}
	f.frames <- feed.RawFrame{Data: []byte("garbage"), ReceivedAt: time.Now()}
	f.frames <- feed.RawFrame{Data: frameFor("ETHUSDT", 2), ReceivedAt: time.Now()}

	require.Eventually(t, func() bool {
		return m.View().Events == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	view := m.View()
	assert.Equal(t, int64(1), view.Totals.DecodeFailures)
	assert.Equal(t, "open", view.Status)
}

func TestMonitor_RunStopsWhenFrameChannelCloses(t *testing.T) {
	f := newFakeFeed(feed.StatusOpen)
	m := New(DefaultConfig(), f, nil)

	close(f.frames)

	err := m.Run(context.Background())
	assert.NoError(t, err)
}
