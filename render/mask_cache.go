// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"slices"
	"sync"
)

// defaultMaskCacheLimit is the soft limit of a renderer's mask cache.
const defaultMaskCacheLimit = 256

// maskKey identifies one rasterized command of one scene generation,
// clipped to a target area.
type maskKey struct {
	scene *Scene
	gen   uint64
	cmd   int
	area  image.Rectangle
}

type maskEntry struct {
	mask  *image.Alpha
	atime int64
}

// maskCache is a soft-limited LRU of coverage masks.
// When it grows past its limit the least recently used quarter is evicted.
type maskCache struct {
	mu        sync.Mutex
	entries   map[maskKey]*maskEntry
	softLimit int
	tick      int64

	hits, misses uint64
}

func newMaskCache(softLimit int) *maskCache {
	return &maskCache{
		entries:   make(map[maskKey]*maskEntry),
		softLimit: softLimit,
	}
}

func (c *maskCache) get(key maskKey) (*image.Alpha, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.tick++
	e.atime = c.tick
	return e.mask, true
}

func (c *maskCache) put(key maskKey, mask *image.Alpha) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	c.entries[key] = &maskEntry{mask: mask, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
}

func (c *maskCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.tick = 0
}

func (c *maskCache) stats() MaskCacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return MaskCacheStats{
		Len:      len(c.entries),
		Capacity: c.softLimit,
		Hits:     c.hits,
		Misses:   c.misses,
	}
}

// evictOldest shrinks the cache to three quarters of its limit.
// Caller must hold c.mu.
func (c *maskCache) evictOldest() {
	target := max(c.softLimit*3/4, 1)
	toEvict := len(c.entries) - target
	if toEvict <= 0 {
		return
	}

	type aged struct {
		key   maskKey
		atime int64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, atime: e.atime})
	}
	slices.SortFunc(all, func(a, b aged) int {
		switch {
		case a.atime < b.atime:
			return -1
		case a.atime > b.atime:
			return 1
		}
		return 0
	})
	for _, a := range all[:toEvict] {
		delete(c.entries, a.key)
	}
}

// MaskCacheStats reports the state of a SoftwareRenderer's mask cache.
type MaskCacheStats struct {
	// Len is the number of cached masks.
	Len int
	// Capacity is the soft limit.
	Capacity int
	// Hits and Misses count lookups since the renderer was created.
	Hits, Misses uint64
}
