package domain

// Service is an agency offering (web development, SEO, ...).
type Service struct {
	BaseModel
	Title            string   `gorm:"size:150;not null" json:"title"`
	Slug             string   `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	ShortDescription string   `gorm:"size:500" json:"shortDescription"`
	Description      string   `gorm:"type:text" json:"description"`
	Icon             string   `gorm:"size:100" json:"icon"`
	Features         []string `gorm:"type:text;serializer:json" json:"features"`
	SortOrder        int      `gorm:"not null;default:0;index" json:"order"`
	IsActive         bool     `gorm:"not null;index" json:"isActive"`
}
