package memo

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/flarekit/flare"
)

func fp(n uint64) flare.Fingerprint {
	return flare.Fingerprint{Hi: 0, Lo: n}
}

func TestCacheSetGet(t *testing.T) {
	c := New(4)
	c.Set(fp(1), "hello")

	v, ok := c.Get(fp(1))
	if !ok || v != "hello" {
		t.Errorf("Get(1) = (%v, %v), want (hello, true)", v, ok)
	}

	if _, ok := c.Get(fp(2)); ok {
		t.Error("Get(2) should miss")
	}
}

func TestCacheEviction(t *testing.T) {
	c := New(2)
	c.Set(fp(1), "a")
	c.Set(fp(2), "b")
	c.Set(fp(3), "c") // evicts 1 (least recently used)

	if _, ok := c.Get(fp(1)); ok {
		t.Error("fp(1) should have been evicted")
	}
	if _, ok := c.Get(fp(2)); !ok {
		t.Error("fp(2) should still be cached")
	}
	if _, ok := c.Get(fp(3)); !ok {
		t.Error("fp(3) should be cached")
	}
}

func TestCacheLRUOrderPreservedByGet(t *testing.T) {
	c := New(2)
	c.Set(fp(1), "a")
	c.Set(fp(2), "b")
	c.Get(fp(1)) // touch 1, making 2 the least recently used
	c.Set(fp(3), "c")

	if _, ok := c.Get(fp(2)); ok {
		t.Error("fp(2) should have been evicted, not fp(1)")
	}
	if _, ok := c.Get(fp(1)); !ok {
		t.Error("fp(1) should still be cached")
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	c := New(0)
	if c.capacity != 1 {
		t.Errorf("New(0).capacity = %d, want 1", c.capacity)
	}
}

func TestCacheGetOrBuild(t *testing.T) {
	c := New(4)
	var calls atomic.Int32

	build := func() (any, error) {
		calls.Add(1)
		return 42, nil
	}

	v, err := c.GetOrBuild(fp(1), build)
	if err != nil || v != 42 {
		t.Fatalf("GetOrBuild = (%v, %v), want (42, nil)", v, err)
	}

	v2, err := c.GetOrBuild(fp(1), build)
	if err != nil || v2 != 42 {
		t.Fatalf("second GetOrBuild = (%v, %v), want (42, nil)", v2, err)
	}
	if calls.Load() != 1 {
		t.Errorf("build called %d times, want 1", calls.Load())
	}
}

func TestCacheGetOrBuildConcurrentDedup(t *testing.T) {
	c := New(4)
	var calls atomic.Int32
	var wg sync.WaitGroup

	build := func() (any, error) {
		calls.Add(1)
		return "value", nil
	}

	const n = 50
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			_, _ = c.GetOrBuild(fp(7), build)
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("build called %d times under concurrent access, want 1", calls.Load())
	}
}

func TestCacheGetOrBuildError(t *testing.T) {
	c := New(4)
	wantErr := errors.New("build failed")

	_, err := c.GetOrBuild(fp(1), func() (any, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("GetOrBuild error = %v, want %v", err, wantErr)
	}
	if _, ok := c.Get(fp(1)); ok {
		t.Error("a failed build should not populate the cache")
	}
}

func TestCacheDelete(t *testing.T) {
	c := New(4)
	c.Set(fp(1), "a")
	if !c.Delete(fp(1)) {
		t.Error("Delete(1) should return true")
	}
	if c.Delete(fp(1)) {
		t.Error("second Delete(1) should return false")
	}
}

func TestCacheStats(t *testing.T) {
	c := New(4)
	c.Set(fp(1), "a")
	c.Get(fp(1))
	c.Get(fp(2))

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Stats() = %+v, want 1 hit and 1 miss", stats)
	}
	if stats.Len != 1 {
		t.Errorf("Stats().Len = %d, want 1", stats.Len)
	}
}
