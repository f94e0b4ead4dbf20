package infrastructure

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestInMemoryCacheSetGet(t *testing.T) {
	cache := NewInMemoryCache()
	cache.Set("ecommerce:/a.csv:1:10", []int{1, 2})

	v, ok := cache.Get("ecommerce:/a.csv:1:10")
	if !ok || len(v.([]int)) != 2 {
		t.Fatalf("Expected cached value, got %v %v", v, ok)
	}
	if _, ok := cache.Get("ecommerce:/a.csv:2:10"); ok {
		t.Error("Another file version must miss")
	}

	cache.Set("ecommerce:/a.csv:1:10", []int{3})
	if v, _ := cache.Get("ecommerce:/a.csv:1:10"); len(v.([]int)) != 1 || cache.Len() != 1 {
		t.Error("Set must overwrite the existing entry")
	}
}

func TestInMemoryCacheDeletePrefix(t *testing.T) {
	cache := NewInMemoryCache()
	cache.Set("ecommerce:/a.csv:1:10", "v1")
	cache.Set("ecommerce:/a.csv:2:12", "v2")
	cache.Set("ecommerce:/a.csv.bak:1:10", "other")
	cache.Set("stands:/a.csv:1:10", "stands")

	removed := cache.DeletePrefix(CachePrefix("ecommerce", "/a.csv"))
	if removed != 2 {
		t.Fatalf("Expected 2 removed entries, got %d", removed)
	}
	_, bak := cache.Get("ecommerce:/a.csv.bak:1:10")
	_, stands := cache.Get("stands:/a.csv:1:10")
	if !bak || !stands {
		t.Error("Entries of other files or namespaces must survive")
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Error("Expected empty cache after Clear")
	}
}

func TestFileSignatureChangesWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a;b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := StatFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("a;b\n1;2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	later := first.ModTime.Add(time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	second, err := StatFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if first.CacheKey("ecommerce") == second.CacheKey("ecommerce") {
		t.Error("Expected a new cache key after modification")
	}
	if first.CacheKey("ecommerce") == first.CacheKey("stands") {
		t.Error("Namespaces must produce distinct keys")
	}

	if _, err := StatFile(filepath.Join(t.TempDir(), "absent.csv")); !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("Expected ErrSourceNotFound, got %v", err)
	}
}

func TestCacheKeyBuilder(t *testing.T) {
	key := NewCacheKeyBuilder().Add("stands").Add("/x.csv").AddInt(42).Build()
	if key != "stands:/x.csv:42" {
		t.Errorf("Unexpected key %q", key)
	}
}

func TestInMemoryCacheConcurrentAccess(t *testing.T) {
	cache := NewInMemoryCache()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := "k" + strconv.Itoa(i%10)
				cache.Set(key, g)
				cache.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if cache.Len() != 10 {
		t.Errorf("Expected 10 keys, got %d", cache.Len())
	}
}

// ========================================
// Benchmarks
// ========================================

// BenchmarkInMemoryCache_Get_NoContention teste Get sans contention (single goroutine)
func BenchmarkInMemoryCache_Get_NoContention(b *testing.B) {
	cache := NewInMemoryCache()
	cache.Set("key1", "value1")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = cache.Get("key1")
	}
}

// BenchmarkInMemoryCache_Get_HighContention teste Get avec haute contention
func BenchmarkInMemoryCache_Get_HighContention(b *testing.B) {
	cache := NewInMemoryCache()
	cache.Set("shared_key", "shared_value")

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = cache.Get("shared_key")
		}
	})
}

// BenchmarkFileSignature_CacheKey mesure la construction d'une clé de cache
func BenchmarkFileSignature_CacheKey(b *testing.B) {
	sig := FileSignature{Path: "datasets/ecommerce_raw.csv", ModTime: time.Now(), Size: 1 << 20}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = sig.CacheKey("ecommerce")
	}
}
