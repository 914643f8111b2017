// Package buzz arbitrates which player buzzed first for the current round.
// One receive loop drains the shared unreliable socket; the coordinator is
// the only consumer of the queue.
package buzz

import (
	"sync"

	"github.com/rs/zerolog/log"

	"trivia/protocol"
)

// Record is one accepted buzz, alive only for the round it was made in.
type Record struct {
	PlayerID  int
	Timestamp int64
}

// Resolver maps a buzz origin address to a registered player. Backed by the
// session registry.
type Resolver interface {
	PlayerByAddr(addr string) (int, bool)
}

// Arbitrator keeps the ordered buzz queue for the live round.
//
// Ordering policy: a signal timestamped after the latest accepted one goes to
// the back of the queue (in-order arrival, the common case). A signal
// timestamped at or before the latest accepted one is a delayed packet that
// should logically have arrived earlier, so it is spliced to the FRONT, ahead
// of everyone already queued; the latest marker is not advanced. Note this is
// not a total order by timestamp once two reorders stack -- a third delayed
// packet lands in front of the second regardless of their relative
// timestamps. Kept as-is on purpose; switching to a strict min-heap would
// change observable winners.
type Arbitrator struct {
	resolver Resolver

	mu     sync.Mutex
	queue  []Record
	latest int64
}

func NewArbitrator(resolver Resolver) *Arbitrator {
	return &Arbitrator{resolver: resolver}
}

// Accept resolves and enqueues one decoded buzz signal. Signals from unknown
// addresses are dropped; a stale or spoofed packet must not disrupt the round.
func (a *Arbitrator) Accept(s protocol.BuzzSignal) {
	playerID, ok := a.resolver.PlayerByAddr(s.Addr)
	if !ok {
		log.Warn().Str("addr", s.Addr).Msg("buzz from unknown sender, dropping")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	rec := Record{PlayerID: playerID, Timestamp: s.Timestamp}
	if s.Timestamp > a.latest {
		a.queue = append(a.queue, rec)
		a.latest = s.Timestamp
	} else {
		a.queue = append([]Record{rec}, a.queue...)
	}
	log.Debug().Int("client_id", playerID).Int64("ts", s.Timestamp).Msg("buzz queued")
}

// First pops the front of the queue: at most one winner per call.
func (a *Arbitrator) First() (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.queue) == 0 {
		return 0, false
	}
	rec := a.queue[0]
	a.queue = a.queue[1:]
	return rec.PlayerID, true
}

// Clear empties the queue and resets the latest-timestamp marker. Called at
// round start and again after a winner is popped, so slower players' stale
// buzzes never leak into the next round.
func (a *Arbitrator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.queue = nil
	a.latest = 0
}

// Pending reports how many buzzes are queued.
func (a *Arbitrator) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.queue)
}
