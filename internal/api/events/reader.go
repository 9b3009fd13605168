package eventsapi

import (
	"context"
	"errors"
	"sort"
	"time"

	"club-site/internal/domain/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOptions narrows GetEvents. The zero value returns every event.
type ListOptions struct {
	Limit        int
	FeaturedOnly bool
	// Upcoming keeps events that have not ended yet, soonest first.
	Upcoming bool
}

// GetEvents returns events with their relations, newest start date first.
func (s *Service) GetEvents(ctx context.Context, opts ListOptions) ([]EventWithRelations, error) {
	ctx, span := tracer.Start(ctx, "events.GetEvents")
	defer span.End()

	var all []EventWithRelations
	if !s.cacheGet(ctx, listKey, &all) {
		loaded, err := s.loadEvents(ctx)
		if err != nil {
			return nil, err
		}
		all = loaded
		s.cacheSet(ctx, listKey, all)
	}

	return filterEvents(all, opts, s.now()), nil
}

// GetEventByID returns nil when id is malformed or no such event exists.
func (s *Service) GetEventByID(ctx context.Context, id string) (*EventWithRelations, error) {
	ctx, span := tracer.Start(ctx, "events.GetEventByID")
	defer span.End()

	u, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	id = u.String()

	var cached EventWithRelations
	if s.cacheGet(ctx, eventKey(id), &cached) {
		return &cached, nil
	}

	db := s.db.WithContext(ctx)
	var row events.Event
	if err := eventsWithRelationsQuery(db).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	markers, err := markersByEvent(db, []string{id})
	if err != nil {
		return nil, err
	}

	out := toEventDTO(row, markers[id])
	out.Headings = events.Headings(row.Description)
	s.cacheSet(ctx, eventKey(id), out)
	return &out, nil
}

func (s *Service) loadEvents(ctx context.Context) ([]EventWithRelations, error) {
	db := s.db.WithContext(ctx)

	var rows []events.Event
	if err := eventsWithRelationsQuery(db).
		Order("date_start DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, e := range rows {
		ids = append(ids, e.ID)
	}
	markers, err := markersByEvent(db, ids)
	if err != nil {
		return nil, err
	}

	out := make([]EventWithRelations, 0, len(rows))
	for _, e := range rows {
		out = append(out, toEventDTO(e, markers[e.ID]))
	}
	return out, nil
}

func filterEvents(all []EventWithRelations, opts ListOptions, now time.Time) []EventWithRelations {
	out := make([]EventWithRelations, 0, len(all))
	for _, e := range all {
		if opts.FeaturedOnly && !e.IsFeatured {
			continue
		}
		if opts.Upcoming {
			end := e.DateStart
			if e.DateEnd != nil {
				end = *e.DateEnd
			}
			if end.Before(now) {
				continue
			}
		}
		out = append(out, e)
	}

	if opts.Upcoming {
		sort.SliceStable(out, func(i, j int) bool { return out[i].DateStart.Before(out[j].DateStart) })
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}
