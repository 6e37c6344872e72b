// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(ttl time.Duration, maxEntries int) (*Cache[string], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[string]("test", ttl, maxEntries)
	c.now = clock.Now
	return c, clock
}

func TestCacheBasicOperations(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(time.Minute, 0)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists || value != "value1" {
		t.Errorf("Get(key1) = %q, %v", value, exists)
	}

	if _, exists := c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.TotalKeys != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if got := c.HitRate(); got != 50 {
		t.Errorf("HitRate() = %v, want 50", got)
	}
}

func TestCacheExpiration(t *testing.T) {
	t.Parallel()
	c, clock := newTestCache(time.Minute, 0)

	c.Set("key1", "value1")
	c.SetWithTTL("key2", "value2", time.Hour)

	clock.Advance(2 * time.Minute)

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
	if _, exists := c.Get("key2"); !exists {
		t.Error("Expected key2 to survive with its longer TTL")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after lazy removal", c.Len())
	}
}

func TestCacheCleanup(t *testing.T) {
	t.Parallel()
	c, clock := newTestCache(time.Minute, 0)

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("key%d", i), "v")
	}
	c.SetWithTTL("keep", "v", time.Hour)
	clock.Advance(2 * time.Minute)

	c.Cleanup()

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	stats := c.GetStats()
	if stats.Evictions != 5 || stats.LastCleanup.IsZero() {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCacheMaxEntries(t *testing.T) {
	t.Parallel()
	c, clock := newTestCache(time.Minute, 2)

	c.Set("oldest", "1")
	clock.Advance(time.Second)
	c.Set("middle", "2")
	clock.Advance(time.Second)
	c.Set("newest", "3")

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Get("oldest"); ok {
		t.Error("entry closest to expiry should have been evicted")
	}

	// Overwriting an existing key must not evict anything.
	c.Set("middle", "2b")
	if v, ok := c.Get("newest"); !ok || v != "3" {
		t.Errorf("Get(newest) = %q, %v", v, ok)
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(time.Minute, 0)

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key3", "value3")

	c.Delete("key1")
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}

	c.Clear()
	for _, key := range []string{"key2", "key3"} {
		if _, exists := c.Get(key); exists {
			t.Errorf("Expected %s to be cleared", key)
		}
	}
	if stats := c.GetStats(); stats.Evictions != 3 || stats.TotalKeys != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	t.Parallel()
	c := New[int]("concurrent", time.Minute, 50)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%100)
				c.Set(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("Len() = %d exceeds max entries", c.Len())
	}
}

func TestCacheServeStopsOnCancel(t *testing.T) {
	t.Parallel()
	c := New[string]("serve", time.Minute, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if c.String() != "serve-cache-cleanup" {
		t.Errorf("String() = %q", c.String())
	}
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	type params struct {
		Algorithm string   `json:"algorithm"`
		Min       *float64 `json:"min"`
	}
	lo := 10.0

	a := GenerateKey("products", params{Algorithm: "linear", Min: &lo})
	b := GenerateKey("products", params{Algorithm: "linear", Min: &lo})
	c := GenerateKey("products", params{Algorithm: "cosine", Min: &lo})
	d := GenerateKey("other", params{Algorithm: "linear", Min: &lo})

	if a != b {
		t.Error("equal params must produce equal keys")
	}
	if a == c || a == d {
		t.Error("different params or prefixes must produce different keys")
	}
	if len(a) != len("products:")+32 {
		t.Errorf("key %q has unexpected length", a)
	}
}
