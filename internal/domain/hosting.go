package domain

// Billing cycles offered for hosting packages.
const (
	BillingMonthly   = "monthly"
	BillingQuarterly = "quarterly"
	BillingYearly    = "yearly"
)

// BillingCycles lists every accepted billing cycle.
var BillingCycles = []string{BillingMonthly, BillingQuarterly, BillingYearly}

// HostingPackage is a purchasable hosting plan.
type HostingPackage struct {
	BaseModel
	Name         string   `gorm:"size:100;not null" json:"name"`
	Slug         string   `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Description  string   `gorm:"size:1000" json:"description"`
	Price        float64  `gorm:"not null;default:0" json:"price"`
	Currency     string   `gorm:"size:3;not null;default:USD" json:"currency"`
	BillingCycle string   `gorm:"size:20;not null;index" json:"billingCycle"`
	Features     []string `gorm:"type:text;serializer:json" json:"features"`
	IsPopular    bool     `gorm:"not null" json:"isPopular"`
	IsActive     bool     `gorm:"not null;index" json:"isActive"`
	SortOrder    int      `gorm:"not null;default:0;index" json:"sortOrder"`
}
