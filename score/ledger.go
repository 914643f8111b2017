// Package score tracks every player's running total for the whole run.
// Totals are never reset; the coordinator applies signed deltas and anyone
// reporting scores reads point-in-time values.
package score

import (
	"sync"
	"sync/atomic"
)

// Ledger is a concurrent map of player id to score. Deltas for the same
// player serialize; deltas for different players never contend.
type Ledger struct {
	scores sync.Map // int -> *int64
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) cell(playerID int) *int64 {
	if v, ok := l.scores.Load(playerID); ok {
		return v.(*int64)
	}
	v, _ := l.scores.LoadOrStore(playerID, new(int64))
	return v.(*int64)
}

// Init sets a player's score to zero. Called once per connect; not intended
// to be called again for a live player.
func (l *Ledger) Init(playerID int) {
	atomic.StoreInt64(l.cell(playerID), 0)
}

// Apply atomically adds delta and returns the new total.
func (l *Ledger) Apply(playerID int, delta int) int {
	return int(atomic.AddInt64(l.cell(playerID), int64(delta)))
}

// Read returns the current total, 0 for unknown players.
func (l *Ledger) Read(playerID int) int {
	if v, ok := l.scores.Load(playerID); ok {
		return int(atomic.LoadInt64(v.(*int64)))
	}
	return 0
}

// Snapshot copies all totals, for end-of-game reporting.
func (l *Ledger) Snapshot() map[int]int {
	out := make(map[int]int)
	l.scores.Range(func(k, v any) bool {
		out[k.(int)] = int(atomic.LoadInt64(v.(*int64)))
		return true
	})
	return out
}
