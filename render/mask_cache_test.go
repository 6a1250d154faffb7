// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"testing"
)

func TestMaskCacheGetPut(t *testing.T) {
	c := newMaskCache(8)
	s := NewScene()
	key := maskKey{scene: s, cmd: 0, area: image.Rect(0, 0, 4, 4)}

	if _, ok := c.get(key); ok {
		t.Fatal("get on empty cache should miss")
	}

	mask := image.NewAlpha(image.Rect(0, 0, 4, 4))
	c.put(key, mask)

	got, ok := c.get(key)
	if !ok || got != mask {
		t.Fatal("get should return the stored mask")
	}

	// A different generation of the same scene is a different entry.
	stale := key
	stale.gen++
	if _, ok := c.get(stale); ok {
		t.Error("get with another generation should miss")
	}

	stats := c.stats()
	if stats.Hits != 1 || stats.Misses != 2 {
		t.Errorf("hits/misses = %d/%d, want 1/2", stats.Hits, stats.Misses)
	}
}

func TestMaskCacheEviction(t *testing.T) {
	c := newMaskCache(4)
	s := NewScene()
	keys := make([]maskKey, 5)
	for i := range keys {
		keys[i] = maskKey{scene: s, cmd: i}
	}

	for _, k := range keys[:4] {
		c.put(k, image.NewAlpha(image.Rect(0, 0, 1, 1)))
	}
	// Touch the oldest entry so it survives eviction.
	c.get(keys[0])

	c.put(keys[4], image.NewAlpha(image.Rect(0, 0, 1, 1)))

	if got := c.stats().Len; got != 3 {
		t.Fatalf("Len = %d, want 3 after eviction", got)
	}
	if _, ok := c.get(keys[0]); !ok {
		t.Error("recently used entry was evicted")
	}
	if _, ok := c.get(keys[4]); !ok {
		t.Error("newest entry was evicted")
	}
	if _, ok := c.get(keys[1]); ok {
		t.Error("least recently used entry should be evicted")
	}
}

func TestMaskCacheUnlimited(t *testing.T) {
	c := newMaskCache(0)
	s := NewScene()
	for i := range 100 {
		c.put(maskKey{scene: s, cmd: i}, image.NewAlpha(image.Rect(0, 0, 1, 1)))
	}
	if got := c.stats().Len; got != 100 {
		t.Errorf("Len = %d, want 100", got)
	}
}
