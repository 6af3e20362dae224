package monitor

import (
	"strconv"

	"github.com/liqmon/liqmon/internal/model"
)

// Key is the synthetic identity of one accepted event. Trade timestamps are
// not unique (several fills can land in the same millisecond), so the key
// pairs the timestamp with a session-scoped arrival sequence number.
type Key struct {
	TradeTime int64  `json:"trade_time"` // Exchange trade time (ms since epoch)
	Seq       uint64 `json:"seq"`        // Arrival sequence, unique per session
}

// String renders the key as "tradeTime-seq".
func (k Key) String() string {
	return strconv.FormatInt(k.TradeTime, 10) + "-" + strconv.FormatUint(k.Seq, 10)
}

// Entry is an event plus its identity key.
type Entry struct {
	Key   Key         `json:"key"`
	Event model.Event `json:"event"`
}

// Sequencer assigns identity keys. It is explicit state owned by whoever
// ingests the stream; it is not safe for concurrent use and is not global,
// so it stays independently testable.
type Sequencer struct {
	next uint64
}

// Assign builds the identified entry for ev and advances the sequence by
// exactly one. The counter never resets or repeats within a session, so two
// identical events received at different times get different keys.
func (s *Sequencer) Assign(ev model.Event) Entry {
	e := Entry{
		Key:   Key{TradeTime: ev.TradeTime, Seq: s.next},
		Event: ev,
	}
	s.next++
	return e
}

// Assigned returns how many identities have been handed out.
func (s *Sequencer) Assigned() uint64 {
	return s.next
}
