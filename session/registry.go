package session

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Registry is the live map of player ids to session handlers. Ids count up
// from 1 and are never reused within a run.
type Registry struct {
	mu      sync.RWMutex
	clients map[int]*Client
	nextID  int
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[int]*Client),
		nextID:  1,
	}
}

// Add registers a new player on its reliable connection. addr is the origin
// address buzz datagrams will be correlated against.
func (r *Registry) Add(conn Conn, addr string) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	c := newClient(id, addr, conn, r)
	r.clients[id] = c
	log.Info().Int("client_id", id).Str("addr", addr).Msg("client registered")
	return c
}

func (r *Registry) Remove(id int) {
	r.mu.Lock()
	_, ok := r.clients[id]
	delete(r.clients, id)
	r.mu.Unlock()
	if ok {
		log.Info().Int("client_id", id).Msg("client removed")
	}
}

func (r *Registry) Get(id int) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	return c, ok
}

// PlayerByAddr resolves a buzz origin address to a player id. Satisfies the
// arbitrator's resolver.
func (r *Registry) PlayerByAddr(addr string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, c := range r.clients {
		if c.addr == addr {
			return id, true
		}
	}
	return 0, false
}

// Snapshot copies the current handlers for broadcast, so senders never hold
// the registry lock across channel writes.
func (r *Registry) Snapshot() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Shutdown tells every connected player the server is going away and drops
// the connections.
func (r *Registry) Shutdown() {
	for _, c := range r.Snapshot() {
		_ = c.SendKill()
		c.teardown()
	}
}
