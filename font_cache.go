package figkit

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
)

// FontCache memoizes parsed fonts for long-running processes. Fonts
// are immutable, so a cached *Font can be handed to any number of
// goroutines; the cache itself is safe for concurrent use.
//
// Entries are keyed two ways: bundled fonts by name, raw data by a
// "sha256:"-prefixed content hash, so identical bytes parse once no
// matter where they came from. A doubly linked list tracks recency and
// the least recently used entry is evicted when the cache is full.
type FontCache struct {
	mu      sync.RWMutex
	fonts   map[string]*cacheEntry
	lru     *lruList
	maxSize int
	bytes   int64

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	key  string
	font *Font
	size int64
	node *lruNode
}

type lruNode struct {
	key  string
	prev *lruNode
	next *lruNode
}

type lruList struct {
	head *lruNode
	tail *lruNode
}

var defaultCache = NewFontCache(100)

// NewFontCache creates a cache holding at most maxSize fonts. A
// maxSize of zero or less means unbounded.
func NewFontCache(maxSize int) *FontCache {
	return &FontCache{
		fonts:   make(map[string]*cacheEntry),
		lru:     &lruList{},
		maxSize: maxSize,
	}
}

// LoadFontCached loads a bundled font by name through the package
// default cache.
func LoadFontCached(name string) (*Font, error) {
	return defaultCache.LoadFont(name)
}

// ParseFontCached parses font data through the package default cache,
// keyed by content hash.
func ParseFontCached(data []byte) (*Font, error) {
	return defaultCache.ParseFont(data)
}

// LoadFont loads a bundled font by name, returning the cached parse
// when one exists.
func (c *FontCache) LoadFont(name string) (*Font, error) {
	if font := c.get(name); font != nil {
		return font, nil
	}

	font, err := LoadFont(name)
	if err != nil {
		return nil, err
	}

	c.put(name, font)
	return font, nil
}

// ParseFont parses font data, returning the cached parse when the same
// bytes have been seen before. The key is the SHA-256 of data, so a
// font cached here once serves every later caller regardless of the
// file it was read from.
func (c *FontCache) ParseFont(data []byte) (*Font, error) {
	hash := sha256.Sum256(data)
	key := "sha256:" + hex.EncodeToString(hash[:])

	if font := c.get(key); font != nil {
		return font, nil
	}

	font, err := ParseFontBytes(data)
	if err != nil {
		return nil, err
	}

	c.put(key, font)
	return font, nil
}

// get looks a key up and refreshes its recency. The read lock covers
// the lookup so concurrent hits don't serialize; the write lock is
// taken only to move the entry to the front, re-checking that it
// survived the unlocked window.
func (c *FontCache) get(key string) *Font {
	c.mu.RLock()
	entry, ok := c.fonts[key]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		return nil
	}

	c.mu.Lock()
	if cur, still := c.fonts[key]; still && cur == entry {
		c.lru.moveToFront(entry.node)
	}
	c.mu.Unlock()

	c.hits.Add(1)
	return entry.font
}

// put inserts a font, evicting the least recently used entry when the
// cache is at capacity. A key that raced in while we were parsing is
// left alone.
func (c *FontCache) put(key string, font *Font) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.fonts[key]; exists {
		return
	}

	if c.maxSize > 0 && len(c.fonts) >= c.maxSize {
		c.evictLRU()
	}

	entry := &cacheEntry{
		key:  key,
		font: font,
		size: estimateFontSize(font),
		node: c.lru.pushFront(key),
	}
	c.fonts[key] = entry
	c.bytes += entry.size
}

// evictLRU removes the tail entry. Caller holds the write lock.
func (c *FontCache) evictLRU() {
	tail := c.lru.tail
	if tail == nil {
		return
	}

	if entry, ok := c.fonts[tail.key]; ok {
		c.bytes -= entry.size
	}
	delete(c.fonts, tail.key)
	c.lru.remove(tail)
	c.evictions.Add(1)
}

// Clear drops every cached font. Statistics counters keep counting.
func (c *FontCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fonts = make(map[string]*cacheEntry)
	c.lru = &lruList{}
	c.bytes = 0
}

// Stats returns a snapshot of the cache counters.
func (c *FontCache) Stats() CacheStats {
	c.mu.RLock()
	size := len(c.fonts)
	bytes := c.bytes
	c.mu.RUnlock()

	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Bytes:     bytes,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// CacheStats is a point-in-time view of cache performance.
type CacheStats struct {
	Size      int   // cached fonts
	MaxSize   int   // capacity, 0 = unbounded
	Bytes     int64 // estimated memory held by cached fonts
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns the hit percentage over all lookups, 0 when the
// cache has never been consulted.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) * 100 / float64(total)
}

// estimateFontSize approximates a font's memory footprint: glyph row
// bytes plus per-row and per-glyph bookkeeping. It underestimates
// allocator overhead, which is fine for eviction accounting.
func estimateFontSize(f *Font) int64 {
	if f == nil || f.pf == nil {
		return 0
	}

	size := int64(128)
	for _, g := range f.pf.Glyphs {
		for _, row := range g.Rows {
			size += int64(len(row))
		}
		size += int64(len(g.Rows) * 16)
	}
	size += int64(len(f.pf.Glyphs) * 48)
	return size
}

func (l *lruList) pushFront(key string) *lruNode {
	node := &lruNode{key: key}

	if l.head == nil {
		l.head = node
		l.tail = node
		return node
	}

	node.next = l.head
	l.head.prev = node
	l.head = node
	return node
}

func (l *lruList) moveToFront(node *lruNode) {
	if node == l.head {
		return
	}

	if node.prev != nil {
		node.prev.next = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	if node == l.tail {
		l.tail = node.prev
	}

	node.prev = nil
	node.next = l.head
	l.head.prev = node
	l.head = node
}

func (l *lruList) remove(node *lruNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
}

// SetDefaultCacheSize replaces the package default cache with one of
// the given capacity. Call it once at startup, before the cache is
// shared.
func SetDefaultCacheSize(maxSize int) {
	defaultCache = NewFontCache(maxSize)
}

// ClearDefaultCache drops everything from the package default cache.
func ClearDefaultCache() {
	defaultCache.Clear()
}

// DefaultCacheStats returns statistics for the package default cache.
func DefaultCacheStats() CacheStats {
	return defaultCache.Stats()
}
