package eventsapi

import (
	"time"

	"club-site/internal/domain/events"
	"club-site/internal/domain/media"
)

// EventWithRelations is an event with its image, location and timeline
// nested, as returned by the read endpoints.
type EventWithRelations struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	DateStart      time.Time  `json:"dateStart"`
	DateEnd        *time.Time `json:"dateEnd"`
	ImageID        *string    `json:"imageId"`
	OnlineURL      *string    `json:"onlineUrl"`
	OnlinePlatform *string    `json:"onlinePlatform"`
	IsFeatured     bool       `json:"isFeatured"`
	CreatedAt      time.Time  `json:"createdAt"`

	Image    *media.Image     `json:"image"`
	Location *events.Location `json:"location"`
	Timeline *TimelineDTO     `json:"timeline"`

	// only filled on single-event reads
	Headings []events.Heading `json:"headings,omitempty"`
}

type TimelineDTO struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Markers     []MarkerDTO `json:"markers"`
}

type MarkerDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Timestamp   *time.Time `json:"timestamp"`
}

// Result is the uniform outcome of the mutation actions.
type Result struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

func toEventDTO(e events.Event, markers []events.TimelineMarker) EventWithRelations {
	dto := EventWithRelations{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		DateStart:      e.DateStart,
		DateEnd:        e.DateEnd,
		ImageID:        e.ImageID,
		OnlineURL:      e.OnlineURL,
		OnlinePlatform: e.OnlinePlatform,
		IsFeatured:     e.IsFeatured,
		CreatedAt:      e.CreatedAt,
		Image:          e.Image,
		Location:       e.Location,
	}

	if e.Timeline != nil {
		events.SortMarkers(markers)
		tl := &TimelineDTO{
			Title:       e.Timeline.Title,
			Description: e.Timeline.Description,
			Markers:     make([]MarkerDTO, 0, len(markers)),
		}
		for _, m := range markers {
			tl.Markers = append(tl.Markers, MarkerDTO{
				ID:          m.ID,
				Title:       m.Title,
				Description: m.Description,
				Timestamp:   m.Timestamp,
			})
		}
		dto.Timeline = tl
	}
	return dto
}
