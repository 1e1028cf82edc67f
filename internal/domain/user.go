package domain

import "time"

// User is an admin dashboard account.
type User struct {
	BaseModel
	FullName     string     `gorm:"size:100;not null" json:"fullName"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	Role         string     `gorm:"size:20;not null;default:admin" json:"role"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
}
