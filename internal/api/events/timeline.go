package eventsapi

import (
	"errors"

	"club-site/internal/domain/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// reconcileTimeline brings the timeline row and its markers in line with the
// submitted timeline. A nil timeline removes both.
func reconcileTimeline(tx *gorm.DB, eventID string, in *TimelineInput) error {
	if in == nil {
		var count int64
		if err := tx.Model(&events.Timeline{}).Where("event_id = ?", eventID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		// markers first, they reference the event the timeline hangs off
		if err := tx.Where("event_id = ?", eventID).Delete(&events.TimelineMarker{}).Error; err != nil {
			return err
		}
		return tx.Where("event_id = ?", eventID).Delete(&events.Timeline{}).Error
	}

	var existing events.Timeline
	err := tx.First(&existing, "event_id = ?", eventID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(&events.Timeline{
			EventID:     eventID,
			Title:       in.Title,
			Description: in.Description,
		}).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if err := tx.Model(&events.Timeline{}).
			Where("event_id = ?", eventID).
			Updates(map[string]any{
				"title":       in.Title,
				"description": in.Description,
			}).Error; err != nil {
			return err
		}
	}

	return reconcileMarkers(tx, eventID, in.Markers)
}

// reconcileMarkers is a three-way diff between stored and submitted markers:
// stale rows are deleted, known ids updated and everything else inserted
// under a fresh id.
func reconcileMarkers(tx *gorm.DB, eventID string, markers []MarkerInput) error {
	var existingIDs []string
	if err := tx.Model(&events.TimelineMarker{}).
		Where("event_id = ?", eventID).
		Pluck("id", &existingIDs).Error; err != nil {
		return err
	}

	existing := make(map[string]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}
	submitted := make(map[string]bool, len(markers))
	for _, m := range markers {
		if m.ID != nil && existing[*m.ID] {
			submitted[*m.ID] = true
		}
	}

	var stale []string
	for _, id := range existingIDs {
		if !submitted[id] {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		if err := tx.Where("event_id = ? AND id IN ?", eventID, stale).
			Delete(&events.TimelineMarker{}).Error; err != nil {
			return err
		}
	}

	for i, m := range markers {
		if m.ID != nil && existing[*m.ID] {
			if err := tx.Model(&events.TimelineMarker{}).
				Where("id = ? AND event_id = ?", *m.ID, eventID).
				Updates(map[string]any{
					"title":       m.Title,
					"description": m.Description,
					"timestamp":   m.Timestamp.Ptr(),
					"position":    i,
				}).Error; err != nil {
				return err
			}
			continue
		}

		row := events.TimelineMarker{
			ID:          uuid.NewString(),
			EventID:     eventID,
			Title:       m.Title,
			Description: m.Description,
			Timestamp:   m.Timestamp.Ptr(),
			Position:    i,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
