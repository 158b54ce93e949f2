// Package store holds in-flight reservations between the reserve leg and
// the gateway's confirmation callback. Entries live in process memory only
// and age out after a retention window, so an abandoned payment never
// accumulates state.
package store

import (
	"sync"
	"time"

	"github.com/sumihiro3/hands-on-line-pay/internal/clock"
	"github.com/sumihiro3/hands-on-line-pay/internal/domain"
)

type entry struct {
	reservation domain.Reservation
	expiresAt   time.Time
}

// Memory is a TTL-bounded map keyed by gateway transaction id. Keys are
// opaque; the store does not validate their shape. Safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	clock   clock.Clock
}

func NewMemory(ttl time.Duration, clk clock.Clock) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		clock:   clk,
	}
}

// Put inserts or replaces the reservation for its transaction id.
// Last write wins; duplicate ids are not expected upstream.
func (m *Memory) Put(transactionID string, res domain.Reservation) {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[transactionID] = entry{
		reservation: res,
		expiresAt:   now.Add(m.ttl),
	}
}

// Get returns the reservation for transactionID. Expired entries behave
// as absent and are dropped on the spot.
func (m *Memory) Get(transactionID string) (domain.Reservation, bool) {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[transactionID]
	if !ok {
		return domain.Reservation{}, false
	}
	if !e.expiresAt.After(now) {
		delete(m.entries, transactionID)
		return domain.Reservation{}, false
	}
	return e.reservation, true
}

// MarkConfirmed transitions the reservation to confirmed so a replayed
// callback can be answered from the stored record instead of charging the
// gateway again. Returns false when the entry is absent or expired.
func (m *Memory) MarkConfirmed(transactionID string) bool {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[transactionID]
	if !ok || !e.expiresAt.After(now) {
		delete(m.entries, transactionID)
		return false
	}
	e.reservation.Status = domain.ReservationStatusConfirmed
	e.reservation.ConfirmedAt = now
	m.entries[transactionID] = e
	return true
}

// Sweep drops every expired entry and reports how many were removed.
// Get already treats expired entries as absent; the sweep only bounds
// memory between lookups.
func (m *Memory) Sweep() int {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.entries {
		if !e.expiresAt.After(now) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live entries, counting not-yet-swept expired
// ones. Used for logging.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
