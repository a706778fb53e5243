// Package cache provides the namespaced result cache for the calculation
// engine: fixed-capacity LRU stores partitioned by namespace, deterministic
// key derivation, and a cross-namespace invalidation policy for results that
// are derived from one another.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Stats is a point-in-time view of one store's counters.
type Stats struct {
	Hits     uint64
	Misses   uint64
	Size     int
	Capacity int
}

// Store is one namespace-scoped LRU cache with hit/miss statistics.
// Eviction order is access order: Get promotes an entry, Set promotes or
// inserts, and the least-recently-used entry is evicted once capacity is
// exceeded. Has, Delete and Clear leave the recency order untouched.
type Store struct {
	entries  *lru.Cache[string, any]
	capacity int
	hits     uint64
	misses   uint64
}

func newStore(capacity int) *Store {
	entries, err := lru.New[string, any](capacity)
	if err != nil {
		// Only a non-positive capacity fails, and namespace capacities are fixed.
		panic(err)
	}
	return &Store{entries: entries, capacity: capacity}
}

// Get returns the cached value for key and promotes it to most recently
// used.
func (s *Store) Get(key string) (any, bool) {
	value, ok := s.entries.Get(key)
	if ok {
		s.hits++
	} else {
		s.misses++
	}
	return value, ok
}

// Set inserts or updates the value for key, promoting it. The least
// recently used entry is evicted if the store is over capacity.
func (s *Store) Set(key string, value any) {
	s.entries.Add(key, value)
}

// Has reports whether key is cached, without touching recency order.
func (s *Store) Has(key string) bool {
	return s.entries.Contains(key)
}

// Delete removes key from the store. The recency order of the remaining
// entries is unchanged.
func (s *Store) Delete(key string) bool {
	return s.entries.Remove(key)
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.entries.Purge()
}

// Len returns the number of cached entries.
func (s *Store) Len() int { return s.entries.Len() }

// Stats returns the store's counters.
func (s *Store) Stats() Stats {
	return Stats{Hits: s.hits, Misses: s.misses, Size: s.entries.Len(), Capacity: s.capacity}
}
