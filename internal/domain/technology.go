package domain

// Technology categories.
const (
	TechCategoryFrontend = "frontend"
	TechCategoryBackend  = "backend"
	TechCategoryDatabase = "database"
	TechCategoryDevOps   = "devops"
	TechCategoryMobile   = "mobile"
	TechCategoryCMS      = "cms"
	TechCategoryOther    = "other"
)

// TechCategories lists every accepted technology category.
var TechCategories = []string{
	TechCategoryFrontend,
	TechCategoryBackend,
	TechCategoryDatabase,
	TechCategoryDevOps,
	TechCategoryMobile,
	TechCategoryCMS,
	TechCategoryOther,
}

// Technology is an item of the agency's tech stack. Deleting one does not
// touch projects that reference it by name.
type Technology struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Category    string `gorm:"size:30;index" json:"category"`
	IconURL     string `gorm:"size:500" json:"iconUrl"`
	Description string `gorm:"size:1000" json:"description"`
	Website     string `gorm:"size:500" json:"website"`
}

// TableName keeps the table name stable regardless of pluralization rules.
func (Technology) TableName() string {
	return "technologies"
}
