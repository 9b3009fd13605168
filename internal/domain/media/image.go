package media

import "time"

// Image is an uploaded, WebP-encoded asset. Hash is the sha256 of the encoded
// bytes and is the dedup key for uploads.
type Image struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	StorageKey string `gorm:"column:uploadthing_key;not null;uniqueIndex" json:"key"`
	URL        string `gorm:"not null" json:"url"`
	Hash       string `gorm:"not null;uniqueIndex" json:"hash"`
	IsDraft    bool   `gorm:"not null;default:true" json:"isDraft"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Image) TableName() string { return "image" }
