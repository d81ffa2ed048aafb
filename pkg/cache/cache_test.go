package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "http:pokeapi::pokemon:1", []byte(`{"name":"bulbasaur"}`), time.Hour); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	data, ok, err := c.Get(ctx, "http:pokeapi::pokemon:1")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want hit", ok, err)
	}
	if string(data) != `{"name":"bulbasaur"}` {
		t.Errorf("Get() data = %s", data)
	}

	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Error("Get() returned hit for missing key")
	}

	if err := c.Delete(ctx, "http:pokeapi::pokemon:1"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "http:pokeapi::pokemon:1"); ok {
		t.Error("Get() returned hit after Delete")
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete() of missing key = %v, want nil", err)
	}
}

func TestFileCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "key", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); !ok {
		t.Fatal("Get() miss before expiry")
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok, err := c.Get(ctx, "key"); ok || err != nil {
		t.Errorf("Get() after expiry = %v, %v; want miss", ok, err)
	}
}

func TestFileCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("key")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := c.Get(ctx, "key"); ok || err != nil {
		t.Errorf("Get() on corrupt entry = %v, %v; want miss", ok, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCache_ConcurrentSet(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Set(ctx, "shared", []byte(`"value"`), time.Hour)
		}()
	}
	wg.Wait()

	data, ok, err := c.Get(ctx, "shared")
	if err != nil || !ok || string(data) != `"value"` {
		t.Errorf("Get() = %q, %v, %v", data, ok, err)
	}
}

func TestFileCache_Clear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte("x"), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() removed %d, want 3", n)
	}
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Error("entry survived Clear")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	if got := k.HTTPKey("pokeapi", "species:bulbasaur"); got != "http:pokeapi:species:bulbasaur" {
		t.Errorf("HTTPKey unexpected: %s", got)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "mirror:")
	if got := scoped.HTTPKey("pokeapi", "pokemon:1"); got != "mirror:http:pokeapi:pokemon:1" {
		t.Errorf("ScopedKeyer HTTPKey unexpected: %s", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	if key := scoped.HTTPKey("test", "key"); key != "prefix:http:test:key" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errTransient)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != errTransient.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, errTransient) {
		t.Error("wrapped error should unwrap to the original")
	}
	if IsRetryable(errTransient) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("success first try", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			return nil
		})
		if err != nil || calls != 1 {
			t.Errorf("err = %v, calls = %d; want nil, 1", err, calls)
		}
	})

	t.Run("non-retryable stops immediately", func(t *testing.T) {
		calls := 0
		plain := errors.New("bad request")
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			return plain
		})
		if err != plain || calls != 1 {
			t.Errorf("err = %v, calls = %d; want %v, 1", err, calls, plain)
		}
	})

	t.Run("retryable retries", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			if calls < 2 {
				return Retryable(errTransient)
			}
			return nil
		})
		if err != nil || calls != 2 {
			t.Errorf("err = %v, calls = %d; want nil, 2", err, calls)
		}
	})

	t.Run("single attempt never retries", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, 1, time.Millisecond, func() error {
			calls++
			return Retryable(errTransient)
		})
		if !errors.Is(err, errTransient) || calls != 1 {
			t.Errorf("err = %v, calls = %d; want transient, 1", err, calls)
		}
	})

	t.Run("zero attempts runs once", func(t *testing.T) {
		calls := 0
		_ = Retry(ctx, 0, time.Millisecond, func() error {
			calls++
			return nil
		})
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Second, func() error {
		return Retryable(errTransient)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
