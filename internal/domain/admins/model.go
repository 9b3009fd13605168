package admins

import "time"

// AllowedAdmin is a GitHub identity permitted to sign into the admin console.
type AllowedAdmin struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	GithubID       string  `gorm:"column:github_id;not null;uniqueIndex" json:"githubId"`
	GithubUsername string  `gorm:"column:github_username;not null" json:"githubUsername"`
	Email          *string `json:"email"`
	IsSuperAdmin   bool    `gorm:"not null;default:false" json:"isSuperAdmin"`

	AddedAt time.Time `gorm:"autoCreateTime" json:"addedAt"`
	AddedBy *string   `json:"addedBy"`
}

func (AllowedAdmin) TableName() string { return "allowed_admins" }
