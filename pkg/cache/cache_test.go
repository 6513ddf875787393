package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get = (%q, %v), want a miss", data, hit)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "route:abc"); hit {
		t.Fatal("empty cache reported a hit")
	}
	if err := c.Set(ctx, "route:abc", []byte(`{"ok":true}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "route:abc")
	if err != nil || !hit {
		t.Fatalf("Get = (%v, %v), want a hit", hit, err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("Get = %s, want the stored value", data)
	}

	if err := c.Delete(ctx, "route:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "route:abc"); hit {
		t.Error("deleted key still hits")
	}
	if err := c.Delete(ctx, "route:abc"); err != nil {
		t.Errorf("Delete of a missing key = %v, want nil", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry still hits")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Errorf("expired entry file left behind: %v", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get = (%v, %v), want a silent miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear = %d, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir still holds %d entries", len(entries))
	}
	if c.Dir() != dir {
		t.Errorf("Dir = %q, want %q", c.Dir(), dir)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash) = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	rk1 := k.RouteKey("abc", RouteKeyOpts{FiberSpacing: 50, Couplers: []string{"te"}})
	rk2 := k.RouteKey("abc", RouteKeyOpts{FiberSpacing: 127, Couplers: []string{"te"}})
	if rk1 == rk2 {
		t.Error("different RouteKeyOpts should produce different keys")
	}
	if rk1 != k.RouteKey("abc", RouteKeyOpts{FiberSpacing: 50, Couplers: []string{"te"}}) {
		t.Error("RouteKey should be deterministic")
	}
	if !strings.HasPrefix(rk1, "route:") {
		t.Errorf("RouteKey = %q, want route: prefix", rk1)
	}

	ak1 := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "json"})
	if ak1 == ak2 {
		t.Error("different ArtifactKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "tenant:1:")
	inner := NewDefaultKeyer()

	if got, want := scoped.RouteKey("h", RouteKeyOpts{}), "tenant:1:"+inner.RouteKey("h", RouteKeyOpts{}); got != want {
		t.Errorf("RouteKey = %q, want %q", got, want)
	}
	if got, want := scoped.ArtifactKey("h", ArtifactKeyOpts{}), "tenant:1:"+inner.ArtifactKey("h", ArtifactKeyOpts{}); got != want {
		t.Errorf("ArtifactKey = %q, want %q", got, want)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if got := nilInner.RouteKey("h", RouteKeyOpts{}); !strings.HasPrefix(got, "p:route:") {
		t.Errorf("RouteKey with nil inner = %q, want p:route: prefix", got)
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		kind    string
		url     string
		wantErr bool
	}{
		{kind: "", wantErr: false},
		{kind: BackendFile, wantErr: false},
		{kind: BackendNone, wantErr: false},
		{kind: BackendRedis, url: "redis://localhost:6379/0", wantErr: false},
		{kind: BackendRedis, url: "", wantErr: true},
		{kind: BackendRedis, url: "http://nope", wantErr: true},
		{kind: "memcached", wantErr: true},
	}
	for _, tt := range tests {
		c, err := Open(tt.kind, t.TempDir(), tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("Open(%q, %q) error = %v, wantErr %v", tt.kind, tt.url, err, tt.wantErr)
			continue
		}
		if c != nil {
			c.Close()
		}
	}
}

func TestRedisCacheKeyPrefix(t *testing.T) {
	c, err := NewRedisCacheFromURL("redis://localhost:6379/0")
	if err != nil {
		t.Fatalf("NewRedisCacheFromURL: %v", err)
	}
	defer c.Close()
	if got := c.key("route:x"); got != "fiberroute:route:x" {
		t.Errorf("key = %q, want fiberroute:route:x", got)
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	c := NewRedisCache(client, "t:")
	defer c.Close()

	_, hit, err := c.Get(context.Background(), "k")
	if hit {
		t.Error("unreachable redis reported a hit")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Get error = %v, want ErrNetwork", err)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), ErrNetwork.Error())
	}
	if IsRetryable(errors.New("bad request")) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond
	ctx := context.Background()
	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		fn        func(calls int) error
		wantErr   error
		wantCalls int
	}{
		{"success", func(int) error { return nil }, nil, 1},
		{"permanent", func(int) error { return permanent }, permanent, 1},
		{"transient", func(calls int) error {
			if calls < 2 {
				return Retryable(ErrNetwork)
			}
			return nil
		}, nil, 2},
		{"exhausted", func(int) error { return Retryable(ErrNetwork) }, ErrNetwork, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, func() error {
				calls++
				return tt.fn(calls)
			})
			if !errors.Is(err, tt.wantErr) && !(err == nil && tt.wantErr == nil) {
				t.Errorf("RetryWithBackoff error = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("RetryWithBackoff = %v, want context.Canceled", err)
	}
}
