package domain

// FAQ is a question/answer pair shown on the public site.
type FAQ struct {
	BaseModel
	Question  string `gorm:"size:500;not null" json:"question"`
	Answer    string `gorm:"type:text;not null" json:"answer"`
	Category  string `gorm:"size:50;index" json:"category"`
	SortOrder int    `gorm:"not null;default:0;index" json:"order"`
	IsActive  bool   `gorm:"not null;index" json:"isActive"`
}

// TableName keeps the table name stable regardless of pluralization rules.
func (FAQ) TableName() string {
	return "faqs"
}
