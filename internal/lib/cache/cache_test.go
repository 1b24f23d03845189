package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.Nop()
	return New(client, time.Minute, &logger), mr
}

func TestGetOrLoadCachesResult(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"2024", "2025"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := GetOrLoad(ctx, c, Key("fiscal-years"), false, load)
		if err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %v", got)
		}
	}

	if calls != 1 {
		t.Fatalf("loader called %d times, want 1", calls)
	}
}

func TestGetOrLoadBypassRefreshes(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t)
	ctx := context.Background()
	version := 0
	load := func(context.Context) (int, error) {
		version++
		return version, nil
	}

	if got, _ := GetOrLoad(ctx, c, "k", false, load); got != 1 {
		t.Fatalf("first read = %d", got)
	}
	if got, _ := GetOrLoad(ctx, c, "k", true, load); got != 2 {
		t.Fatalf("bypassed read = %d, want fresh value", got)
	}
	if got, _ := GetOrLoad(ctx, c, "k", false, load); got != 2 {
		t.Fatalf("cached read after bypass = %d, want refreshed value 2", got)
	}
}

func TestGetOrLoadDoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	c, mr := newTestCache(t)
	boom := errors.New("boom")

	_, err := GetOrLoad(context.Background(), c, "k", false, func(context.Context) (string, error) {
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if mr.Exists("k") {
		t.Fatal("failed load must not be cached")
	}
}

func TestGetOrLoadSurvivesRedisOutage(t *testing.T) {
	t.Parallel()

	c, mr := newTestCache(t)
	mr.Close()

	got, err := GetOrLoad(context.Background(), c, "k", false, func(context.Context) (string, error) {
		return "fresh", nil
	})
	if err != nil || got != "fresh" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestNilCacheLoads(t *testing.T) {
	t.Parallel()

	var c *Cache
	got, err := GetOrLoad(context.Background(), c, "k", false, func(context.Context) (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Fatalf("got %d, %v", got, err)
	}
	if err := c.Invalidate(context.Background(), "k"); err != nil {
		t.Fatal(err)
	}
}

func TestInvalidatePrefix(t *testing.T) {
	t.Parallel()

	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, Key("eedm", "buyers", "list"), []int{1})
	c.Set(ctx, Key("eedm", "buyers", "abc"), 1)
	c.Set(ctx, Key("eedm", "grants", "list"), []int{1})

	if err := c.InvalidatePrefix(ctx, Key("eedm", "buyers")); err != nil {
		t.Fatalf("InvalidatePrefix: %v", err)
	}
	if mr.Exists(Key("eedm", "buyers", "list")) || mr.Exists(Key("eedm", "buyers", "abc")) {
		t.Fatal("buyers keys survived")
	}
	if !mr.Exists(Key("eedm", "grants", "list")) {
		t.Fatal("grants key was removed")
	}
}
