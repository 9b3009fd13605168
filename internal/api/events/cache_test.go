package eventsapi

import (
	"context"
	"strings"
	"testing"
	"time"

	"club-site/internal/domain/events"
	"club-site/internal/infra/cache"
	"club-site/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestReadsAreCachedUntilRevalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	db := testutil.NewDB(t)
	admin := testutil.SeedAdmin(t, db, "1001", "ada", true)
	s := NewService(db, rc, time.Minute)
	ctx := context.Background()

	id := mustCreate(t, s, admin, demoNight())
	if ev := mustGet(t, s, id); ev.Title != "Demo Night" {
		t.Fatalf("title=%s", ev.Title)
	}
	if _, err := s.GetEvents(ctx, ListOptions{}); err != nil {
		t.Fatal(err)
	}

	// change the row behind the cache's back
	if err := db.Model(&events.Event{}).Where("id = ?", id).Update("title", "Changed").Error; err != nil {
		t.Fatal(err)
	}
	if ev := mustGet(t, s, id); ev.Title != "Demo Night" {
		t.Fatalf("expected cached title, got %s", ev.Title)
	}
	list, _ := s.GetEvents(ctx, ListOptions{})
	if list[0].Title != "Demo Night" {
		t.Fatalf("expected cached list, got %s", list[0].Title)
	}

	s.Revalidate(ctx, "/events", "/events/"+id)

	if ev := mustGet(t, s, id); ev.Title != "Changed" {
		t.Fatalf("title after revalidate=%s", ev.Title)
	}
	list, _ = s.GetEvents(ctx, ListOptions{})
	if list[0].Title != "Changed" {
		t.Fatalf("list after revalidate=%s", list[0].Title)
	}
}

func TestMutationsRevalidate(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	db := testutil.NewDB(t)
	admin := testutil.SeedAdmin(t, db, "1001", "ada", true)
	s := NewService(db, rc, time.Minute)
	ctx := context.Background()

	id := mustCreate(t, s, admin, demoNight())
	mustGet(t, s, id)
	if _, err := s.GetEvents(ctx, ListOptions{}); err != nil {
		t.Fatal(err)
	}

	f := demoNight()
	f.Title = "Demo Night II"
	if err := s.UpdateEvent(ctx, admin, id, f); err != nil {
		t.Fatal(err)
	}
	if ev := mustGet(t, s, id); ev.Title != "Demo Night II" {
		t.Fatalf("single event stale: %s", ev.Title)
	}
	list, _ := s.GetEvents(ctx, ListOptions{})
	if list[0].Title != "Demo Night II" {
		t.Fatalf("list stale: %s", list[0].Title)
	}

	if err := s.DeleteEvent(ctx, admin, id); err != nil {
		t.Fatal(err)
	}
	if ev, _ := s.GetEventByID(ctx, id); ev != nil {
		t.Fatalf("deleted event still served from cache")
	}
	if list, _ := s.GetEvents(ctx, ListOptions{}); len(list) != 0 {
		t.Fatalf("deleted event still listed")
	}
}

func TestCacheExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	db := testutil.NewDB(t)
	admin := testutil.SeedAdmin(t, db, "1001", "ada", true)
	s := NewService(db, rc, time.Minute)

	id := mustCreate(t, s, admin, demoNight())
	mustGet(t, s, id)
	db.Model(&events.Event{}).Where("id = ?", id).Update("title", "Changed")

	mr.FastForward(2 * time.Minute)

	if ev := mustGet(t, s, id); ev.Title != "Changed" {
		t.Fatalf("title=%s after ttl", ev.Title)
	}
}

func TestCacheKeyIgnoresIDSpelling(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	db := testutil.NewDB(t)
	admin := testutil.SeedAdmin(t, db, "1001", "ada", true)
	s := NewService(db, rc, time.Hour)
	ctx := context.Background()

	id := mustCreate(t, s, admin, demoNight())
	if ev := mustGet(t, s, strings.ToUpper(id)); ev.Title != "Demo Night" {
		t.Fatalf("title=%s", ev.Title)
	}
	if !mr.Exists("club:" + eventKey(id)) {
		t.Fatalf("event cached under %v", mr.Keys())
	}

	upd := demoNight()
	upd.Title = "Renamed"
	if err := s.UpdateEvent(ctx, admin, id, upd); err != nil {
		t.Fatal(err)
	}
	if ev := mustGet(t, s, strings.ToUpper(id)); ev.Title != "Renamed" {
		t.Fatalf("stale read through uppercase id: %s", ev.Title)
	}
}
