package domain

import "time"

// Project categories.
const (
	ProjectCategoryWeb       = "web"
	ProjectCategoryMobile    = "mobile"
	ProjectCategoryEcommerce = "ecommerce"
	ProjectCategoryBranding  = "branding"
	ProjectCategoryMarketing = "marketing"
	ProjectCategoryOther     = "other"
)

// ProjectCategories lists every accepted project category.
var ProjectCategories = []string{
	ProjectCategoryWeb,
	ProjectCategoryMobile,
	ProjectCategoryEcommerce,
	ProjectCategoryBranding,
	ProjectCategoryMarketing,
	ProjectCategoryOther,
}

// Project is a portfolio case study.
type Project struct {
	BaseModel
	Title        string     `gorm:"size:200;not null" json:"title"`
	Slug         string     `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Description  string     `gorm:"size:1000" json:"description"`
	Content      string     `gorm:"type:text" json:"content"`
	Category     string     `gorm:"size:30;index" json:"category"`
	ClientName   string     `gorm:"size:150" json:"clientName"`
	CoverImage   string     `gorm:"size:500" json:"coverImage"`
	Gallery      []string   `gorm:"type:text;serializer:json" json:"gallery"`
	Technologies []string   `gorm:"type:text;serializer:json" json:"technologies"`
	LiveURL      string     `gorm:"size:500" json:"liveUrl"`
	RepoURL      string     `gorm:"size:500" json:"repoUrl"`
	IsFeatured   bool       `gorm:"not null" json:"isFeatured"`
	CompletedAt  *time.Time `json:"completedAt"`
}
