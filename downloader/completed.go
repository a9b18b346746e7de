package downloader

import "sync"

// CompletedSet deduplicates identical tasks submitted twice (by absolute
// target path). Concurrently readable and writable; insertion is
// idempotent (§4.6, §5 Shared resources).
type CompletedSet struct {
	mu  sync.Mutex
	set map[string]struct{}
}

// NewCompletedSet returns an empty, ready-to-use set.
func NewCompletedSet() *CompletedSet {
	return &CompletedSet{set: make(map[string]struct{})}
}

// Contains reports whether path has already been recorded complete.
func (c *CompletedSet) Contains(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.set[path]
	return ok
}

// Add records path as complete. Safe to call more than once for the same
// path.
func (c *CompletedSet) Add(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set[path] = struct{}{}
}
