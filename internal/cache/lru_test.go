package cache

import (
	"sync"
	"testing"
)

func TestLRUCache_SetAndGet(t *testing.T) {
	cache := NewLRUCache(10)

	cache.Set("key1", "value1")

	value, found := cache.Get("key1")
	if !found {
		t.Error("expected to find key1")
	}
	if value != "value1" {
		t.Errorf("expected 'value1', got '%v'", value)
	}
}

func TestLRUCache_GetNotFound(t *testing.T) {
	cache := NewLRUCache(10)

	value, found := cache.Get("nonexistent")
	if found {
		t.Error("expected not to find nonexistent key")
	}
	if value != "" {
		t.Errorf("expected empty value, got '%v'", value)
	}
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	cache := NewLRUCache(10)

	cache.Set("key1", "value1")
	cache.Set("key1", "value2")

	value, found := cache.Get("key1")
	if !found {
		t.Error("expected to find key1")
	}
	if value != "value2" {
		t.Errorf("expected 'value2', got '%v'", value)
	}
	if cache.Len() != 1 {
		t.Errorf("expected length 1, got %d", cache.Len())
	}
}

func TestLRUCache_Eviction(t *testing.T) {
	cache := NewLRUCache(3)

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")
	cache.Set("key3", "value3")
	cache.Set("key4", "value4")

	if cache.Len() != 3 {
		t.Errorf("expected length 3 after eviction, got %d", cache.Len())
	}

	if _, found := cache.Get("key1"); found {
		t.Error("expected key1 to be evicted (LRU)")
	}

	if _, found := cache.Get("key4"); !found {
		t.Error("expected key4 to be present")
	}
}

func TestLRUCache_GetRefreshesRecency(t *testing.T) {
	cache := NewLRUCache(3)

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")
	cache.Set("key3", "value3")

	// Touch key1 so key2 becomes the eviction candidate.
	cache.Get("key1")
	cache.Set("key4", "value4")

	if _, found := cache.Get("key1"); !found {
		t.Error("expected recently used key1 to survive")
	}

	if _, found := cache.Get("key2"); found {
		t.Error("expected key2 to be evicted")
	}
}

func TestLRUCache_Delete(t *testing.T) {
	cache := NewLRUCache(10)

	cache.Set("key1", "value1")
	cache.Delete("key1")

	if _, found := cache.Get("key1"); found {
		t.Error("expected key1 to be deleted")
	}
	if cache.Len() != 0 {
		t.Errorf("expected length 0, got %d", cache.Len())
	}
}

func TestLRUCache_ConcurrentAccess(t *testing.T) {
	cache := NewLRUCache(100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := string(rune('a' + n))
				cache.Set(key, "value")
				cache.Get(key)
			}
		}(i)
	}
	wg.Wait()
}
