// Package monitor implements the core of the liquidation view: identity
// assignment, the bounded newest-first event history, and the paginated
// view-model derived from it.
//
// Invariants:
//   - History length never exceeds its capacity; eviction happens only as a
//     side effect of Push, inside the same critical section as the insert.
//   - Snapshot index 0 is always the most recently pushed entry.
//   - Every accepted event gets a unique identity key (trade time, sequence),
//     so two fills in the same millisecond are still distinguishable and keep
//     their arrival order.
//   - Page geometry (count, bounds flags) is recomputed from the current
//     snapshot on every derivation, never cached, so a shrinking history can
//     never leave a stale page index behind.
package monitor
