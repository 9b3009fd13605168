package eventsapi

import (
	"context"
	"errors"
	"log"
	"time"

	"club-site/internal/domain/admins"
	"club-site/internal/domain/events"
	"club-site/internal/domain/media"
	"club-site/internal/errmodel"
	"club-site/internal/infra/cache"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var tracer = otel.Tracer("club-site/events")

// Service owns event writes and reads.
type Service struct {
	db    *gorm.DB
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewService(db *gorm.DB, c cache.Cache, ttl time.Duration) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{db: db, cache: c, ttl: ttl, now: time.Now}
}

// CreateEvent validates data and stores the event with its location and
// timeline in one transaction. It returns the new event id.
func (s *Service) CreateEvent(ctx context.Context, admin *admins.AllowedAdmin, data EventFormData) (string, error) {
	ctx, span := tracer.Start(ctx, "events.CreateEvent")
	defer span.End()

	if admin == nil {
		return "", errmodel.Unauthorized()
	}
	if err := data.Validate(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := publishImage(tx, data.ImageID); err != nil {
			return err
		}

		ev := events.Event{
			ID:             id,
			Title:          data.Title,
			Description:    data.Description,
			DateStart:      data.DateStart.Time,
			DateEnd:        data.DateEnd.Ptr(),
			ImageID:        data.ImageID,
			OnlineURL:      data.OnlineURL,
			OnlinePlatform: data.OnlinePlatform,
			IsFeatured:     data.IsFeatured,
		}
		if err := tx.Omit(clause.Associations).Create(&ev).Error; err != nil {
			return err
		}

		if err := reconcileLocation(tx, id, data.Location); err != nil {
			return err
		}
		return reconcileTimeline(tx, id, data.Timeline)
	})
	if err != nil {
		return "", failed("create", err)
	}

	s.Revalidate(ctx, "/admin/events", "/events")
	return id, nil
}

// UpdateEvent overwrites the event row and reconciles its children.
func (s *Service) UpdateEvent(ctx context.Context, admin *admins.AllowedAdmin, id string, data EventFormData) error {
	ctx, span := tracer.Start(ctx, "events.UpdateEvent")
	defer span.End()

	if admin == nil {
		return errmodel.Unauthorized()
	}
	if err := data.Validate(); err != nil {
		return err
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return errmodel.NotFound("Event not found")
	}
	id = u.String()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := publishImage(tx, data.ImageID); err != nil {
			return err
		}

		res := tx.Model(&events.Event{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"title":           data.Title,
				"description":     data.Description,
				"date_start":      data.DateStart.Time,
				"date_end":        data.DateEnd.Ptr(),
				"image_id":        data.ImageID,
				"online_url":      data.OnlineURL,
				"online_platform": data.OnlinePlatform,
				"is_featured":     data.IsFeatured,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errmodel.NotFound("Event not found")
		}

		if err := reconcileLocation(tx, id, data.Location); err != nil {
			return err
		}
		return reconcileTimeline(tx, id, data.Timeline)
	})
	if err != nil {
		return failed("update", err)
	}

	s.Revalidate(ctx, "/admin/events", "/events", "/events/"+id)
	return nil
}

// DeleteEvent removes the event. Location, timeline and markers go with it
// through ON DELETE CASCADE.
func (s *Service) DeleteEvent(ctx context.Context, admin *admins.AllowedAdmin, id string) error {
	ctx, span := tracer.Start(ctx, "events.DeleteEvent")
	defer span.End()

	if admin == nil {
		return errmodel.Unauthorized()
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return errmodel.NotFound("Event not found")
	}
	id = u.String()

	res := s.db.WithContext(ctx).Delete(&events.Event{}, "id = ?", id)
	if res.Error != nil {
		return failed("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return errmodel.NotFound("Event not found")
	}

	s.Revalidate(ctx, "/admin/events", "/events", "/events/"+id)
	return nil
}

// publishImage clears the draft flag of the image an event points at.
func publishImage(tx *gorm.DB, imageID *string) error {
	if imageID == nil {
		return nil
	}
	res := tx.Model(&media.Image{}).Where("id = ?", *imageID).Update("is_draft", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errmodel.Validation("Image not found")
	}
	return nil
}

// failed passes typed errors through and turns everything else into the
// generic failure for the action.
func failed(action string, err error) error {
	var e *errmodel.Error
	if errors.As(err, &e) {
		return e
	}
	log.Printf("❌ Failed to %s event: %v", action, err)
	return errmodel.Unexpected("Failed to "+action+" event", err)
}
