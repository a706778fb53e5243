package cache

import (
	"github.com/rs/zerolog"
)

// The fixed namespace set. Each namespace is an isolated LRU store with its
// own capacity and statistics.
const (
	NamespacePortfolio   = "portfolio-calculation"
	NamespaceSector      = "sector-analysis"
	NamespaceRows        = "virtual-scroll-rows"
	NamespaceRebalancing = "rebalancing-analysis"
)

// Invalidation reason tags. Purely observational: they are logged and
// counted for diagnostics, never branched on.
const (
	ReasonStockAdded         = "stock-added"
	ReasonStockRemoved       = "stock-removed"
	ReasonTransactionAdded   = "transaction-added"
	ReasonTransactionDeleted = "transaction-deleted"
	ReasonSettingsChanged    = "settings-changed"
	ReasonPortfolioLoaded    = "portfolio-loaded"
	ReasonManual             = "manual"
)

// capacities holds the per-namespace entry limits.
var capacities = map[string]int{
	NamespacePortfolio:   20,
	NamespaceSector:      20,
	NamespaceRows:        50,
	NamespaceRebalancing: 10,
}

// derived maps a namespace to the namespaces computed from its output.
// Invalidating the former must also clear the latter.
var derived = map[string][]string{
	NamespacePortfolio: {NamespaceSector, NamespaceRebalancing},
}

// Registry is the set of namespace-scoped stores for one application
// session. It is explicitly constructed and passed in, never shared as
// process-wide state, so tests can run against isolated instances. Access
// to an unknown namespace is a logged no-op, never an error.
type Registry struct {
	stores        map[string]*Store
	invalidations map[string]uint64 // count by reason tag
	log           zerolog.Logger
}

// NewRegistry creates a registry with every namespace at its fixed capacity.
func NewRegistry(log zerolog.Logger) *Registry {
	stores := make(map[string]*Store, len(capacities))
	for namespace, capacity := range capacities {
		stores[namespace] = newStore(capacity)
	}
	return &Registry{
		stores:        stores,
		invalidations: make(map[string]uint64),
		log:           log.With().Str("service", "cache").Logger(),
	}
}

// store resolves a namespace, logging a warning for unknown ones.
func (r *Registry) store(namespace string) *Store {
	s, ok := r.stores[namespace]
	if !ok {
		r.log.Warn().Str("namespace", namespace).Msg("access to unknown cache namespace ignored")
		return nil
	}
	return s
}

// Get returns the cached value for key in the given namespace.
func (r *Registry) Get(namespace, key string) (any, bool) {
	s := r.store(namespace)
	if s == nil {
		return nil, false
	}
	return s.Get(key)
}

// Set caches a value for key in the given namespace.
func (r *Registry) Set(namespace, key string, value any) {
	if s := r.store(namespace); s != nil {
		s.Set(key, value)
	}
}

// Has reports whether key is cached, without touching recency order.
func (r *Registry) Has(namespace, key string) bool {
	s := r.store(namespace)
	return s != nil && s.Has(key)
}

// Delete removes key from the given namespace.
func (r *Registry) Delete(namespace, key string) bool {
	s := r.store(namespace)
	return s != nil && s.Delete(key)
}

// Invalidate clears a namespace together with every namespace derived from
// it: portfolio-calculation output feeds sector-analysis and
// rebalancing-analysis, so those go too. The reason is recorded for
// diagnostics only.
func (r *Registry) Invalidate(namespace, reason string) {
	s := r.store(namespace)
	if s == nil {
		return
	}
	r.invalidations[reason]++
	s.Clear()
	for _, dep := range derived[namespace] {
		r.stores[dep].Clear()
	}
	r.log.Debug().Str("namespace", namespace).Str("reason", reason).Msg("cache invalidated")
}

// InvalidateAll clears every namespace. Used on portfolio load, reset, and
// global settings changes.
func (r *Registry) InvalidateAll(reason string) {
	r.invalidations[reason]++
	for _, s := range r.stores {
		s.Clear()
	}
	r.log.Debug().Str("reason", reason).Msg("all caches invalidated")
}

// Stats returns the per-namespace counters.
func (r *Registry) Stats() map[string]Stats {
	stats := make(map[string]Stats, len(r.stores))
	for namespace, s := range r.stores {
		stats[namespace] = s.Stats()
	}
	return stats
}

// Invalidations returns the invalidation counts by reason tag.
func (r *Registry) Invalidations() map[string]uint64 {
	counts := make(map[string]uint64, len(r.invalidations))
	for reason, n := range r.invalidations {
		counts[reason] = n
	}
	return counts
}
