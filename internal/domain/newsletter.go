package domain

import "time"

// Subscription is a newsletter sign-up. At most one record exists per
// email; unsubscribing flips IsActive instead of deleting the row.
type Subscription struct {
	BaseModel
	Email          string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	IsActive       bool       `gorm:"not null;index" json:"isActive"`
	Source         string     `gorm:"size:50" json:"source"`
	SubscribedAt   time.Time  `json:"subscribedAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt"`
}

// TableName keeps the table name stable regardless of pluralization rules.
func (Subscription) TableName() string {
	return "newsletter_subscriptions"
}
