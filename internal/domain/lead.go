package domain

// Lead statuses, in pipeline order.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// LeadStatuses lists every accepted lead status.
var LeadStatuses = []string{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusConverted,
	LeadStatusLost,
}

// Lead sources.
const (
	LeadSourceContactForm      = "contact_form"
	LeadSourcePackageSelection = "package_selection"
	LeadSourceOther            = "other"
)

// LeadSources lists every accepted lead source.
var LeadSources = []string{
	LeadSourceContactForm,
	LeadSourcePackageSelection,
	LeadSourceOther,
}

// Lead is an inbound sales enquiry tracked through the CRM pipeline.
type Lead struct {
	BaseModel
	FullName    string `gorm:"size:100;not null" json:"fullName"`
	Email       string `gorm:"size:255;not null;index" json:"email"`
	Phone       string `gorm:"size:40" json:"phone"`
	CompanyName string `gorm:"size:150" json:"companyName"`
	Service     string `gorm:"size:100" json:"service"`
	Budget      string `gorm:"size:50" json:"budget"`
	Message     string `gorm:"type:text" json:"message"`
	Source      string `gorm:"size:30;not null;index" json:"source"`
	Status      string `gorm:"size:20;not null;index" json:"status"`
	Notes       string `gorm:"type:text" json:"notes"`
}
