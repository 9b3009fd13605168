package events

import (
	"time"

	"club-site/internal/domain/media"
)

// Event is the aggregate root. Location, Timeline and Markers hang off the
// event id and are removed by the database when the event is deleted.
type Event struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"` // markdown

	DateStart time.Time  `gorm:"column:date_start;not null;index" json:"dateStart"`
	DateEnd   *time.Time `gorm:"column:date_end" json:"dateEnd"`

	ImageID *string      `gorm:"type:uuid" json:"imageId"`
	Image   *media.Image `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"image"`

	OnlineURL      *string `gorm:"column:online_url" json:"onlineUrl"`
	OnlinePlatform *string `gorm:"column:online_platform" json:"onlinePlatform"`
	IsFeatured     bool    `gorm:"not null;default:false;index" json:"isFeatured"`

	Location *Location       `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE;" json:"location"`
	Timeline *Timeline       `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE;" json:"timeline"`
	Markers  []TimelineMarker `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Event) TableName() string { return "event" }

// Location has no existence flag of its own: a row exists while at least one
// field is populated.
type Location struct {
	EventID string  `gorm:"type:uuid;primaryKey" json:"-"`
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `gorm:"type:varchar(3)" json:"state"`
	Zip     *string `gorm:"type:varchar(10)" json:"zip"`
	Country *string `json:"country"`
}

func (Location) TableName() string { return "location" }

type Timeline struct {
	EventID     string  `gorm:"type:uuid;primaryKey" json:"-"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (Timeline) TableName() string { return "timeline" }

type TimelineMarker struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     string     `gorm:"type:uuid;not null;index" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Description *string    `json:"description"`
	Timestamp   *time.Time `json:"timestamp"`

	// Position is the index the marker had in the last submitted list.
	Position  int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"-"`
}

func (TimelineMarker) TableName() string { return "timeline_marker" }
