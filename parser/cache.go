package parser

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// resolutionCache memoizes fully expanded references for one document.
// Concurrent misses for the same reference share a single expansion.
type resolutionCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

type cacheEntry struct {
	node Node
	err  error
}

func newResolutionCache() *resolutionCache {
	return &resolutionCache{entries: make(map[string]cacheEntry)}
}

// resolve returns the cached result for ref, computing it on a miss.
// Failures are cached too: the document never changes, so neither does the
// outcome.
func (c *resolutionCache) resolve(ref string, log Logger, compute func() (Node, error)) (Node, error) {
	c.mu.RLock()
	entry, ok := c.entries[ref]
	c.mu.RUnlock()
	if ok {
		log.Debug("resolution cache hit", "ref", ref)
		return entry.node, entry.err
	}

	v, err, shared := c.group.Do(ref, func() (any, error) {
		n, err := compute()
		c.mu.Lock()
		c.entries[ref] = cacheEntry{node: n, err: err}
		c.mu.Unlock()
		return n, err
	})
	if shared {
		log.Debug("resolution shared with concurrent caller", "ref", ref)
	}
	if err != nil {
		return nil, err
	}
	n, _ := v.(Node)
	return n, nil
}

// size reports the number of cached entries.
func (c *resolutionCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
