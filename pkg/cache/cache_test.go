package cache_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sandrolain/goexpr/pkg/cache"
)

func TestCacheNew(t *testing.T) {
	c := cache.New[string](10)
	if got := c.Len(); got != 0 {
		t.Fatalf("expected empty cache, got %d", got)
	}
	if got := c.Capacity(); got != 10 {
		t.Fatalf("expected capacity 10, got %d", got)
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	c := cache.New[string](0)
	if got := c.Capacity(); got != 256 {
		t.Fatalf("expected default capacity 256, got %d", got)
	}
}

func TestCacheSetGet(t *testing.T) {
	c := cache.New[*int](4)
	v := new(int)
	c.Set("k", v)
	if got := c.Len(); got != 1 {
		t.Fatalf("expected 1 entry, got %d", got)
	}
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != v {
		t.Fatal("expected same pointer")
	}
}

func TestCacheMiss(t *testing.T) {
	c := cache.New[*int](4)
	got, ok := c.Get("missing")
	if ok {
		t.Fatal("expected cache miss")
	}
	if got != nil {
		t.Fatalf("expected zero value on miss, got %v", got)
	}
}

func TestCacheLRUEviction(t *testing.T) {
	c := cache.New[int](3)
	for i, k := range []string{"a", "b", "c", "d"} {
		c.Set(k, i)
	}
	if got := c.Len(); got != 3 {
		t.Fatalf("expected 3 entries after eviction, got %d", got)
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal(`expected "a" to be evicted (LRU)`)
	}
	if _, ok := c.Get("d"); !ok {
		t.Fatal(`expected most-recently-inserted "d" to survive`)
	}
}

func TestCacheGetPromotes(t *testing.T) {
	c := cache.New[int](3)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected hit for a")
	}
	c.Set("d", 4)
	if _, ok := c.Get("b"); ok {
		t.Fatal(`expected "b" to be evicted after "a" was promoted`)
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal(`expected promoted "a" to survive`)
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := cache.New[int](4)
	c.Set("k", 1)
	c.Invalidate("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss after Invalidate")
	}
	c.Invalidate("never-set")
}

func TestCacheClear(t *testing.T) {
	c := cache.New[int](4)
	for i, k := range []string{"a", "b", "c"} {
		c.Set(k, i)
	}
	c.Clear()
	if got := c.Len(); got != 0 {
		t.Fatalf("expected 0 after Clear, got %d", got)
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := cache.New[*int](4)
	callCount := 0
	create := func() (*int, error) {
		callCount++
		return new(int), nil
	}

	v1, err := c.GetOrCreate("k", create)
	if err != nil || v1 == nil {
		t.Fatalf("first GetOrCreate: %v", err)
	}
	if callCount != 1 {
		t.Fatalf("expected 1 create call, got %d", callCount)
	}

	v2, err := c.GetOrCreate("k", create)
	if err != nil || v2 == nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if callCount != 1 {
		t.Fatalf("expected still 1 call (cached), got %d", callCount)
	}
	if v1 != v2 {
		t.Fatal("expected same pointer from cache")
	}
}

func TestCacheGetOrCreateErrorNotCached(t *testing.T) {
	c := cache.New[int](4)
	boom := errors.New("boom")
	if _, err := c.GetOrCreate("k", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected error not to be cached, got %d entries", c.Len())
	}
	got, err := c.GetOrCreate("k", func() (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Fatalf("expected 7, got %d (%v)", got, err)
	}
}

func TestCacheSetUpdate(t *testing.T) {
	c := cache.New[string](4)
	c.Set("k", "first")
	c.Set("k", "second") // overwrite
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit after overwrite")
	}
	if got != "second" {
		t.Fatalf("expected updated value, got %q", got)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry after overwrite, got %d", c.Len())
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := cache.New[int](16)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("k%d", (g*100+i)%32)
				c.Set(key, i)
				c.Get(key)
			}
		}()
	}
	wg.Wait()
	if got := c.Len(); got > c.Capacity() {
		t.Fatalf("cache grew beyond capacity: %d > %d", got, c.Capacity())
	}
}

func TestCacheOnEvict(t *testing.T) {
	c := cache.New[int](2)
	var evicted []string
	c.OnEvict(func(key string, value int) {
		evicted = append(evicted, fmt.Sprintf("%s=%d", key, value))
	})

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3) // evicts a
	c.Set("b", 20)
	c.Invalidate("c")
	c.Invalidate("never-set")
	c.Set("d", 4)
	c.Clear()

	want := []string{"a=1", "b=2", "c=3", "b=20", "d=4"}
	if fmt.Sprint(evicted) != fmt.Sprint(want) {
		t.Fatalf("evicted %v, want %v", evicted, want)
	}
	if c.Len() != 0 {
		t.Fatalf("expected 0 after Clear, got %d", c.Len())
	}
}

func TestCacheOnEvictNotCalledOnHit(t *testing.T) {
	c := cache.New[int](2)
	calls := 0
	c.OnEvict(func(string, int) { calls++ })

	if _, err := c.GetOrCreate("k", func() (int, error) { return 1, nil }); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrCreate("k", func() (int, error) { return 2, nil }); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Fatalf("expected no evictions, got %d", calls)
	}
}
