package domain

import "time"

// BlogPost is an article on the public blog. Posts are hidden from public
// listings until IsPublished is set.
type BlogPost struct {
	BaseModel
	Title       string     `gorm:"size:200;not null" json:"title"`
	Slug        string     `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Excerpt     string     `gorm:"size:500" json:"excerpt"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	CoverImage  string     `gorm:"size:500" json:"coverImage"`
	Category    string     `gorm:"size:50;index" json:"category"`
	Tags        []string   `gorm:"type:text;serializer:json" json:"tags"`
	Author      string     `gorm:"size:100" json:"author"`
	IsPublished bool       `gorm:"not null;index" json:"isPublished"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
	Views       int64      `gorm:"not null;default:0" json:"views"`
}
