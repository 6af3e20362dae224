package monitor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liqmon/liqmon/internal/model"
)

// testEntry builds an entry whose sequence doubles as a recognizable payload.
func testEntry(seq uint64, tradeTime int64) Entry {
	return Entry{
		Key: Key{TradeTime: tradeTime, Seq: seq},
		Event: model.Event{
			Symbol:    fmt.Sprintf("SYM%d", seq),
			Side:      model.SideSell,
			TradeTime: tradeTime,
		},
	}
}

func TestHistory_BoundInvariant(t *testing.T) {
	const capacity = 10

	for _, pushes := range []int{0, 1, 5, 10, 11, 100} {
		h := NewHistory(capacity)
		for i := 0; i < pushes; i++ {
			h.Push(testEntry(uint64(i), int64(i)))
		}

		want := pushes
		if want > capacity {
			want = capacity
		}
		assert.Equal(t, want, h.Len(), "after %d pushes", pushes)
		assert.Len(t, h.Snapshot(), want, "after %d pushes", pushes)
	}
}

func TestHistory_NewestFirst(t *testing.T) {
	h := NewHistory(10)

	h.Push(testEntry(1, 100))
	h.Push(testEntry(2, 100))

	snap := h.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, uint64(2), snap[0].Key.Seq, "index 0 must be the most recent push")
	assert.Equal(t, uint64(1), snap[1].Key.Seq)
}

func TestHistory_EvictionOrder(t *testing.T) {
	const capacity = 10

	h := NewHistory(capacity)
	for i := 1; i <= capacity+1; i++ {
		h.Push(testEntry(uint64(i), int64(i)))
	}

	snap := h.Snapshot()
	require.Len(t, snap, capacity)

	// First-pushed entry is gone; 2nd..11th remain, newest first.
	for i, e := range snap {
		assert.Equal(t, uint64(capacity+1-i), e.Key.Seq, "snapshot[%d]", i)
	}
	for _, e := range snap {
		assert.NotEqual(t, uint64(1), e.Key.Seq, "oldest entry must be evicted")
	}
}

// Reference scenario: CAP 200, 205 pushes with increasing timestamps.
func TestHistory_ReferenceScenario(t *testing.T) {
	h := NewHistory(200)

	for i := 1; i <= 205; i++ {
		h.Push(testEntry(uint64(i), int64(1000+i)))
	}

	snap := h.Snapshot()
	require.Len(t, snap, 200)
	assert.Equal(t, uint64(205), snap[0].Key.Seq, "newest entry first")
	assert.Equal(t, "SYM205", snap[0].Event.Symbol)
	assert.Equal(t, uint64(6), snap[199].Key.Seq, "first five entries evicted")
}

func TestHistory_SnapshotDetached(t *testing.T) {
	h := NewHistory(5)
	h.Push(testEntry(1, 100))

	snap := h.Snapshot()
	h.Push(testEntry(2, 200))

	require.Len(t, snap, 1)
	assert.Equal(t, uint64(1), snap[0].Key.Seq, "snapshot must not see later pushes")
}

func TestNewHistory_MinimumCapacity(t *testing.T) {
	h := NewHistory(0)
	h.Push(testEntry(1, 1))
	h.Push(testEntry(2, 2))

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, uint64(2), h.Snapshot()[0].Key.Seq)
}
