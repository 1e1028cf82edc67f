package domain

// Team departments.
const (
	DepartmentLeadership  = "leadership"
	DepartmentEngineering = "engineering"
	DepartmentDesign      = "design"
	DepartmentMarketing   = "marketing"
	DepartmentSales       = "sales"
	DepartmentSupport     = "support"
)

// Departments lists every accepted team department.
var Departments = []string{
	DepartmentLeadership,
	DepartmentEngineering,
	DepartmentDesign,
	DepartmentMarketing,
	DepartmentSales,
	DepartmentSupport,
}

// TeamMember is a person shown on the public team page.
type TeamMember struct {
	BaseModel
	FullName    string `gorm:"size:100;not null" json:"fullName"`
	Position    string `gorm:"size:100;not null" json:"position"`
	Department  string `gorm:"size:30;index" json:"department"`
	Bio         string `gorm:"type:text" json:"bio"`
	PhotoURL    string `gorm:"size:500" json:"photoUrl"`
	Email       string `gorm:"size:255" json:"email"`
	LinkedinURL string `gorm:"size:500" json:"linkedinUrl"`
	GithubURL   string `gorm:"size:500" json:"githubUrl"`
	TwitterURL  string `gorm:"size:500" json:"twitterUrl"`
	SortOrder   int    `gorm:"not null;default:0;index" json:"order"`
	IsActive    bool   `gorm:"not null;index" json:"isActive"`
}
