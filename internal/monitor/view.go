package monitor

// PageState is the operator's pagination cursor.
type PageState struct {
	Index int `json:"index"` // Zero-based page index
	Size  int `json:"size"`  // Rows per page, positive
}

// NewPageState returns a cursor on the first page with the given size
// (minimum 1).
func NewPageState(size int) PageState {
	if size < 1 {
		size = 1
	}
	return PageState{Index: 0, Size: size}
}

// Next moves the cursor forward one page. No-op on the last page.
func (s *PageState) Next(pageCount int) {
	if s.Index < pageCount-1 {
		s.Index++
	}
}

// Prev moves the cursor back one page. No-op on the first page.
func (s *PageState) Prev() {
	if s.Index > 0 {
		s.Index--
	}
}

// Page is one derived page of the history.
type Page struct {
	Rows      []Entry `json:"rows"`       // At most Size entries, newest first
	Index     int     `json:"index"`      // Effective (clamped) page index
	PageCount int     `json:"page_count"` // Always >= 1
	CanGoNext bool    `json:"can_go_next"`
	CanGoPrev bool    `json:"can_go_prev"`
}

// PageCount returns the number of pages needed for n entries at the given
// page size. An empty history still has one (empty) page.
func PageCount(n, size int) int {
	if size < 1 {
		size = 1
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// DerivePage computes the visible slice of history for the given cursor.
// It is a pure function: page geometry is recomputed from the snapshot every
// time, and an out-of-range index is clamped to the last page rather than
// producing an empty page with a stale cursor. The clamp is idempotent, so
// the view self-corrects no matter how history and cursor changes interleave.
func DerivePage(history []Entry, state PageState) Page {
	size := state.Size
	if size < 1 {
		size = 1
	}

	count := PageCount(len(history), size)

	index := state.Index
	if index < 0 {
		index = 0
	}
	if index >= count {
		index = count - 1
	}

	start := index * size
	end := start + size
	if start > len(history) {
		start = len(history)
	}
	if end > len(history) {
		end = len(history)
	}

	return Page{
		Rows:      history[start:end],
		Index:     index,
		PageCount: count,
		CanGoNext: index < count-1,
		CanGoPrev: index > 0,
	}
}
