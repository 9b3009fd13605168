package eventsapi

import (
	"club-site/internal/domain/events"

	"gorm.io/gorm"
)

func eventsWithRelationsQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&events.Event{}).
		Preload("Image").
		Preload("Location").
		Preload("Timeline")
}

// markersByEvent loads the markers of all given events in one query.
func markersByEvent(db *gorm.DB, eventIDs []string) (map[string][]events.TimelineMarker, error) {
	out := make(map[string][]events.TimelineMarker, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}

	var rows []events.TimelineMarker
	if err := db.
		Where("event_id IN ?", eventIDs).
		Order("position ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, m := range rows {
		out[m.EventID] = append(out[m.EventID], m)
	}
	return out, nil
}
