// Package cache holds the process-lifetime account snapshot.
//
// The cache is a single slot: it is populated lazily by the first read
// path that finds it empty, and replaced wholesale by an explicit
// refresh. Individual records are never edited in place, so a trait
// update is stale here until the next refresh.
//
// MCP dispatch over stdio is serialized by the host, but the slot is
// still guarded by a mutex so a concurrent host cannot corrupt it.
package cache

import (
	"sync"

	"github.com/cs-tools/vitally-mcp/internal/vitally"
)

// AccountCache is the mutable slot holding the most recently fetched
// account list.
type AccountCache struct {
	mu        sync.RWMutex
	accounts  []vitally.Account
	populated bool
	onReplace func([]vitally.Account)
}

// New creates an empty cache.
func New() *AccountCache {
	return &AccountCache{}
}

// SetOnReplace installs a hook invoked after every Replace with the new
// snapshot. Set once at wiring time, before the server starts serving.
func (c *AccountCache) SetOnReplace(fn func([]vitally.Account)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReplace = fn
}

// IsEmpty reports whether the cache has never been populated. A
// populated cache holding zero accounts is not empty — an empty upstream
// listing is a valid snapshot, not a reason to refetch on every read.
func (c *AccountCache) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.populated
}

// Replace overwrites the snapshot unconditionally, regardless of prior
// state.
func (c *AccountCache) Replace(accounts []vitally.Account) {
	c.mu.Lock()
	snapshot := make([]vitally.Account, len(accounts))
	copy(snapshot, accounts)
	c.accounts = snapshot
	c.populated = true
	hook := c.onReplace
	c.mu.Unlock()

	if hook != nil {
		hook(snapshot)
	}
}

// All returns a copy of the current snapshot. Callers must not assume it
// is fresh; staleness is bounded only by explicit refreshes.
func (c *AccountCache) All() []vitally.Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]vitally.Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}
