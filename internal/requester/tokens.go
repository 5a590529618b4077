package requester

import (
	"sync"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

// HandleToken is the protocol layer's opaque per-request identifier. It is
// only ever translated to a RequestID at the requester boundary and never
// reaches the dispatch loop.
type HandleToken string

// TokenMap is the per-adapter bookkeeping from handle token to request ID.
// Several protocol notifications may race on it (a close signal against a
// completing request is the common case), so all operations take the lock;
// they are all O(1) and short.
type TokenMap struct {
	mu  sync.Mutex
	ids map[HandleToken]message.RequestID
}

// NewTokenMap returns an empty token map.
func NewTokenMap() *TokenMap {
	return &TokenMap{ids: make(map[HandleToken]message.RequestID)}
}

// Insert records token → id. Tokens are unique while live on the protocol
// side, so an existing entry is simply overwritten.
func (m *TokenMap) Insert(token HandleToken, id message.RequestID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[token] = id
}

// Take removes and returns the ID mapped to token. A miss is an expected
// race (the request may already have completed), not a failure.
func (m *TokenMap) Take(token HandleToken) (message.RequestID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.ids[token]
	if ok {
		delete(m.ids, token)
	}
	return id, ok
}

// Peek returns the ID mapped to token without removing it. Used by update
// operations that reuse a live request's identity.
func (m *TokenMap) Peek(token HandleToken) (message.RequestID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.ids[token]
	return id, ok
}

// Len reports the number of live mappings.
func (m *TokenMap) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ids)
}
