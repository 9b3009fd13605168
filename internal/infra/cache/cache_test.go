package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func newRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisFromClient(client), mr
}

func TestRedisRoundTripAndDelete(t *testing.T) {
	ctx := context.Background()
	c, _ := newRedis(t)

	var got entry
	found, err := c.Get(ctx, "events:list", &got)
	if err != nil || found {
		t.Fatalf("empty cache: found=%v err=%v", found, err)
	}

	if err := c.Set(ctx, "events:list", entry{ID: "1", Title: "Demo Night"}, time.Minute); err != nil {
		t.Fatal(err)
	}
	found, err = c.Get(ctx, "events:list", &got)
	if err != nil || !found {
		t.Fatalf("after set: found=%v err=%v", found, err)
	}
	if got.Title != "Demo Night" {
		t.Fatalf("title=%q", got.Title)
	}

	if err := c.Delete(ctx, "events:list", "events:missing"); err != nil {
		t.Fatal(err)
	}
	found, _ = c.Get(ctx, "events:list", &got)
	if found {
		t.Fatalf("key should be gone after delete")
	}
}

func TestRedisTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedis(t)

	if err := c.Set(ctx, "events:abc", entry{ID: "abc"}, 30*time.Second); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(31 * time.Second)

	var got entry
	found, err := c.Get(ctx, "events:abc", &got)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatalf("entry should have expired")
	}
}
