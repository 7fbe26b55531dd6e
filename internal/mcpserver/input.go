package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oasgraph/parser"
)

// specInput represents the three ways an OAS document can be provided to a
// tool. Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OAS document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (JSON or YAML)"`
}

// cacheEntry holds a cached document with LRU ordering and TTL expiry.
type cacheEntry struct {
	doc       *parser.Document
	insertAt  time.Time
	expiresAt time.Time
}

// specCacheStore is a session-scoped cache of parsed documents.
// File inputs are keyed by (absolutePath, modTime), content inputs by a
// SHA-256 hash and URL inputs by the URL. Documents are immutable, so a
// cached document is shared between concurrent tool calls.
type specCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var specCache = &specCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached document or nil. Expired entries are lazily removed.
func (c *specCacheStore) get(key string) *parser.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.insertAt = time.Now()
	return e.doc
}

// put stores a document, evicting the least recently used entry if at
// capacity.
func (c *specCacheStore) put(key string, doc *parser.Document, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{doc: doc, insertAt: now, expiresAt: now.Add(ttl)}
	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = entry
}

// sweep removes all expired entries.
func (c *specCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a goroutine that periodically removes expired
// entries until ctx is canceled. Only the first call spawns a sweeper.
func (c *specCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *specCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

func (c *specCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey returns the cache key and TTL for the input. The key is empty
// when the input cannot be cached.
func (s specInput) cacheKey() (string, time.Duration) {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return "", 0
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "", 0
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano()), cfg.CacheFileTTL
	case s.URL != "":
		return "url:" + s.URL, cfg.CacheURLTTL
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:]), cfg.CacheContentTTL
	default:
		return "", 0
	}
}

// resolve reads and parses the document from whichever input was provided,
// using the cache when it is enabled.
func (s specInput) resolve(ctx context.Context) (*parser.Document, error) {
	count := 0
	for _, v := range []string{s.File, s.URL, s.Content} {
		if v != "" {
			count++
		}
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASGRAPH_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key, ttl = s.cacheKey()
		if key != "" {
			if doc := specCache.get(key); doc != nil {
				return doc, nil
			}
		}
	}

	var data []byte
	var err error
	switch {
	case s.File != "":
		data, err = os.ReadFile(s.File)
	case s.URL != "":
		data, err = fetchSpec(ctx, newFetchClient(cfg.AllowPrivateIPs), s.URL, cfg.MaxFetchSize)
	default:
		data = []byte(s.Content)
	}
	if err != nil {
		return nil, err
	}

	doc, err := parser.ParseBytes(data, cfg.parserOptions()...)
	if err != nil {
		return nil, err
	}
	if key != "" {
		specCache.put(key, doc, ttl)
	}
	return doc, nil
}
