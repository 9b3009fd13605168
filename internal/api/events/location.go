package eventsapi

import (
	"errors"

	"club-site/internal/domain/events"

	"gorm.io/gorm"
)

// reconcileLocation keeps the location row of an event in step with the
// submitted fields: any populated field upserts the row, none deletes it.
func reconcileLocation(tx *gorm.DB, eventID string, in *LocationInput) error {
	if !in.present() {
		return tx.Where("event_id = ?", eventID).Delete(&events.Location{}).Error
	}

	var existing events.Location
	err := tx.First(&existing, "event_id = ?", eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&events.Location{
			EventID: eventID,
			Street:  in.Street,
			City:    in.City,
			State:   in.State,
			Zip:     in.Zip,
			Country: in.Country,
		}).Error
	}
	if err != nil {
		return err
	}

	// map form so cleared fields are written as NULL
	return tx.Model(&events.Location{}).
		Where("event_id = ?", eventID).
		Updates(map[string]any{
			"street":  in.Street,
			"city":    in.City,
			"state":   in.State,
			"zip":     in.Zip,
			"country": in.Country,
		}).Error
}
