package eventsapi

import (
	"context"
	"log"
	"strings"
)

const listKey = "events:list"

func eventKey(id string) string { return "events:" + id }

// Revalidate drops the cached data behind the given site paths so the next
// read goes to the database. Failures are logged; readers fall back to the
// TTL.
func (s *Service) Revalidate(ctx context.Context, paths ...string) {
	seen := map[string]bool{}
	var keys []string
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	for _, p := range paths {
		p = strings.TrimRight(p, "/")
		switch {
		case p == "/events" || p == "/admin/events":
			add(listKey)
		case strings.HasPrefix(p, "/events/"):
			add(eventKey(strings.TrimPrefix(p, "/events/")))
		}
	}
	if len(keys) == 0 {
		return
	}

	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("⚠️ cache revalidate %v: %v", paths, err)
	}
}

func (s *Service) cacheGet(ctx context.Context, key string, dst any) bool {
	ok, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		log.Printf("⚠️ cache get %s: %v", key, err)
		return false
	}
	return ok
}

func (s *Service) cacheSet(ctx context.Context, key string, v any) {
	if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
		log.Printf("⚠️ cache set %s: %v", key, err)
	}
}
