package cache

import (
	"slices"
	"strconv"
	"strings"
)

// KeyOptions carries the optional parts of a cache key. A zero Version or
// Timestamp is omitted from the key.
type KeyOptions struct {
	Version   int
	Timestamp int64 // milliseconds
}

// Key derives the deterministic cache key
// "{namespace}[:v{version}][:t{timestampMillis}]:{component}:{component}…".
// The components are sorted lexicographically before joining, so permuting
// the caller's input order produces an identical key. Caller-supplied ids
// are assumed colon-free.
func Key(namespace string, opts KeyOptions, components ...string) string {
	parts := make([]string, 0, len(components)+3)
	parts = append(parts, namespace)
	if opts.Version > 0 {
		parts = append(parts, "v"+strconv.Itoa(opts.Version))
	}
	if opts.Timestamp > 0 {
		parts = append(parts, "t"+strconv.FormatInt(opts.Timestamp, 10))
	}
	sorted := slices.Clone(components)
	slices.Sort(sorted)
	return strings.Join(append(parts, sorted...), ":")
}

// StockComponent derives the per-stock key component "id:price:txIDs", with
// the transaction ids sorted so the component does not depend on ledger
// ordering.
func StockComponent(id, price string, txIDs []string) string {
	sorted := slices.Clone(txIDs)
	slices.Sort(sorted)
	return id + ":" + price + ":" + strings.Join(sorted, ",")
}
