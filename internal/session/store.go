// Package session keeps each visitor's uploaded survey in memory between
// requests.
package session

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"incosedss/internal/report"

	"github.com/google/uuid"
)

// ID identifies one visitor session
type ID string

// NewID creates a new session identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// ParseID validates an identifier received from a client
func ParseID(raw string) (ID, bool) {
	if _, err := uuid.Parse(raw); err != nil {
		return "", false
	}
	return ID(raw), true
}

// Entry is the dataset a session currently holds
type Entry struct {
	Dataset    *report.Dataset
	FileName   string
	UploadedAt time.Time
	lastSeen   time.Time
}

// Store defines the session storage operations
type Store interface {
	Put(id ID, entry Entry)
	Get(id ID) (Entry, bool)
	Delete(id ID)
	Len() int
}

// MemoryStore is a Store bounded by idle TTL and entry count
type MemoryStore struct {
	mu         sync.RWMutex
	entries    map[ID]*Entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	observe    func(size int)
}

// NewMemoryStore creates an empty store
func NewMemoryStore(ttl time.Duration, maxEntries int) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[ID]*Entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		observe:    func(int) {},
	}
}

// OnResize registers a callback receiving the entry count after every change
func (s *MemoryStore) OnResize(fn func(size int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observe = fn
}

// Put stores or replaces the entry for a session, evicting the least recently
// used sessions when the store is full
func (s *MemoryStore) Put(id ID, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.lastSeen = s.now()
	if entry.UploadedAt.IsZero() {
		entry.UploadedAt = entry.lastSeen
	}
	s.entries[id] = &entry

	if overflow := len(s.entries) - s.maxEntries; overflow > 0 {
		s.evictOldest(overflow)
	}
	s.observe(len(s.entries))
}

// Get returns a session's entry and refreshes its idle timer
func (s *MemoryStore) Get(id ID) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return Entry{}, false
	}
	now := s.now()
	if now.Sub(entry.lastSeen) > s.ttl {
		delete(s.entries, id)
		s.observe(len(s.entries))
		return Entry{}, false
	}
	entry.lastSeen = now
	return *entry, true
}

// Delete drops a session
func (s *MemoryStore) Delete(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	s.observe(len(s.entries))
}

// Len returns the number of held sessions
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// CleanupExpired removes sessions idle for longer than the TTL and returns how
// many were removed
func (s *MemoryStore) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.entries {
		if now.Sub(entry.lastSeen) > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	if removed > 0 {
		s.observe(len(s.entries))
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.CleanupExpired(); removed > 0 {
				log.Printf("[Session] Expired %d idle sessions (%d remaining)", removed, s.Len())
			}
		}
	}
}

// evictOldest removes the n least recently seen entries; callers hold the lock
func (s *MemoryStore) evictOldest(n int) {
	ids := make([]ID, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.entries[ids[i]].lastSeen.Before(s.entries[ids[j]].lastSeen)
	})
	for _, id := range ids[:n] {
		delete(s.entries, id)
	}
}
