package domain

// Testimonial is a client quote with a 1..5 star rating.
type Testimonial struct {
	BaseModel
	ClientName  string `gorm:"size:100;not null" json:"clientName"`
	ClientRole  string `gorm:"size:100" json:"clientRole"`
	CompanyName string `gorm:"size:150" json:"companyName"`
	Content     string `gorm:"type:text;not null" json:"content"`
	Rating      int    `gorm:"not null;default:5" json:"rating"`
	AvatarURL   string `gorm:"size:500" json:"avatarUrl"`
	ProjectName string `gorm:"size:200" json:"projectName"`
	IsFeatured  bool   `gorm:"not null;index" json:"isFeatured"`
}
