package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(n int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		out[i] = testEntry(uint64(n-i), int64(n-i)) // newest first, like a snapshot
	}
	return out
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{0, 20, 1}, // empty history still has one page
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 20, 3},
		{200, 20, 10},
		{5, 0, 5}, // degenerate size clamps to 1
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PageCount(tt.n, tt.size), "PageCount(%d, %d)", tt.n, tt.size)
	}
}

func TestDerivePage_EmptyHistory(t *testing.T) {
	page := DerivePage(nil, NewPageState(20))

	assert.Empty(t, page.Rows)
	assert.Equal(t, 1, page.PageCount)
	assert.False(t, page.CanGoNext)
	assert.False(t, page.CanGoPrev)
}

// Buffer length 45, page size 20, page index 2: remainder page of 5.
func TestDerivePage_RemainderPage(t *testing.T) {
	page := DerivePage(entries(45), PageState{Index: 2, Size: 20})

	require.Len(t, page.Rows, 5)
	assert.Equal(t, 3, page.PageCount)
	assert.False(t, page.CanGoNext)
	assert.True(t, page.CanGoPrev)

	// The remainder page holds the 5 oldest entries.
	assert.Equal(t, uint64(5), page.Rows[0].Key.Seq)
	assert.Equal(t, uint64(1), page.Rows[4].Key.Seq)
}

func TestDerivePage_FirstPageIsNewest(t *testing.T) {
	page := DerivePage(entries(45), NewPageState(20))

	require.Len(t, page.Rows, 20)
	assert.Equal(t, uint64(45), page.Rows[0].Key.Seq)
	assert.True(t, page.CanGoNext)
	assert.False(t, page.CanGoPrev)
}

func TestDerivePage_PageSizeLargerThanHistory(t *testing.T) {
	page := DerivePage(entries(3), NewPageState(20))

	assert.Len(t, page.Rows, 3)
	assert.Equal(t, 1, page.PageCount)
	assert.False(t, page.CanGoNext)
	assert.False(t, page.CanGoPrev)
}

// A stale cursor beyond the end clamps to the last page instead of going blank.
func TestDerivePage_ClampsStaleIndex(t *testing.T) {
	page := DerivePage(entries(45), PageState{Index: 9, Size: 20})

	assert.Equal(t, 2, page.Index)
	assert.Len(t, page.Rows, 5)
	assert.False(t, page.CanGoNext)

	// Clamp is idempotent: deriving again with the clamped index changes nothing.
	again := DerivePage(entries(45), PageState{Index: page.Index, Size: 20})
	assert.Equal(t, page, again)
}

func TestDerivePage_NegativeIndexClamps(t *testing.T) {
	page := DerivePage(entries(5), PageState{Index: -3, Size: 2})

	assert.Equal(t, 0, page.Index)
	assert.Len(t, page.Rows, 2)
}

func TestPageState_Navigation(t *testing.T) {
	st := NewPageState(20)
	count := PageCount(45, 20) // 3 pages

	st.Prev()
	assert.Equal(t, 0, st.Index, "prev on first page is a no-op")

	st.Next(count)
	st.Next(count)
	assert.Equal(t, 2, st.Index)

	st.Next(count)
	assert.Equal(t, 2, st.Index, "next on last page is a no-op, no wrapping")

	st.Prev()
	assert.Equal(t, 1, st.Index)
}
