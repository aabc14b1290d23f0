// Package snapshot memoizes fetched permission snapshots per canonical
// domain set, saving a store round trip when the same selection is
// compared repeatedly.
package snapshot

import (
	"context"
	"sort"
	"strings"
	"sync"

	"permsync/permission"
)

// Fetcher loads a permission snapshot from the backing store.
type Fetcher interface {
	FetchPermissions(ctx context.Context, domains []string) (permission.Snapshot, error)
}

// Cache memoizes Fetcher results. It is shared for the lifetime of the
// process and guarded for concurrent requests. A written domain can appear
// in any number of cached keys, and the cache does not track which, so
// every store write must be followed by InvalidateAll.
type Cache struct {
	fetcher Fetcher

	mu      sync.RWMutex
	entries map[string]permission.Snapshot
}

func NewCache(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher: fetcher,
		entries: make(map[string]permission.Snapshot),
	}
}

// Key canonicalizes a domain set: sorted and deduplicated, so {A,B} and
// {B,A} share one cache entry.
func Key(domains []string) string {
	sorted := append([]string(nil), domains...)
	sort.Strings(sorted)

	uniq := make([]string, 0, len(sorted))
	for i, d := range sorted {
		if i > 0 && d == sorted[i-1] {
			continue
		}
		uniq = append(uniq, d)
	}
	return strings.Join(uniq, "\x1f")
}

// Get returns the cached snapshot for the domain set, fetching and storing
// it on a miss. Two concurrent misses on the same key may both fetch; the
// second result simply replaces the first, which is a redundant read, not
// a correctness problem.
func (c *Cache) Get(ctx context.Context, domains []string) (permission.Snapshot, error) {
	key := Key(domains)

	c.mu.RLock()
	snap, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return snap, nil
	}

	snap, err := c.fetcher.FetchPermissions(ctx, domains)
	if err != nil {
		return permission.Snapshot{}, err
	}

	c.mu.Lock()
	c.entries[key] = snap
	c.mu.Unlock()
	return snap, nil
}

// InvalidateAll drops every cached snapshot.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]permission.Snapshot)
	c.mu.Unlock()
}
