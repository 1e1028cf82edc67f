package hosting

import (
	"net/url"
	"strings"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// Filter holds the list parameters accepted by GET /hosting-packages.
type Filter struct {
	Page         pkg.PageParams
	BillingCycle string
	IsPopular    *bool
	IsActive     *bool
}

// ParseFilter reads and validates list parameters.
func ParseFilter(values url.Values) (Filter, error) {
	p := pkg.NewParams(values)
	f := Filter{
		Page:         p.Pagination(pkg.DefaultLimit),
		BillingCycle: p.Enum("billingCycle", domain.BillingCycles),
		IsPopular:    p.Bool("isPopular"),
		IsActive:     p.Bool("isActive"),
	}
	return f, p.Err()
}

// Query translates the filter into a storage query. Inactive packages are
// hidden from anonymous callers.
func (f Filter) Query(privileged bool) pkg.Query {
	q := pkg.Query{}
	switch {
	case !privileged:
		q = q.Eq("is_active", true)
	case f.IsActive != nil:
		q = q.Eq("is_active", *f.IsActive)
	}
	if f.BillingCycle != "" {
		q = q.Eq("billing_cycle", f.BillingCycle)
	}
	if f.IsPopular != nil {
		q = q.Eq("is_popular", *f.IsPopular)
	}
	return q.OrderBy(pkg.Asc("sort_order"), pkg.Desc("created_at"))
}

// CreatePackageRequest is the input for creating a hosting package.
// Currency defaults to USD, billing cycle to monthly and IsActive to true.
type CreatePackageRequest struct {
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	BillingCycle string   `json:"billingCycle"`
	Features     []string `json:"features"`
	IsPopular    bool     `json:"isPopular"`
	IsActive     *bool    `json:"isActive"`
	SortOrder    int      `json:"sortOrder"`
}

// Validate implements pkg.Validator.
func (r *CreatePackageRequest) Validate() error {
	c := pkg.NewChecker()
	c.Check("name", strings.TrimSpace(r.Name), "required,max=100")
	c.Check("slug", r.Slug, "max=120")
	c.Slug("slug", pkg.NormalizeSlug(r.Slug))
	c.Check("description", r.Description, "max=1000")
	c.Check("price", r.Price, "gte=0")
	c.Check("currency", strings.ToUpper(r.Currency), "omitempty,iso4217")
	c.Check("billingCycle", r.BillingCycle, "omitempty,"+pkg.OneOf(domain.BillingCycles))
	c.Check("features", r.Features, "max=30,dive,max=200")
	c.Check("sortOrder", r.SortOrder, "gte=0")
	return c.Err()
}

func (r *CreatePackageRequest) hostingPackage(slug string) *domain.HostingPackage {
	p := &domain.HostingPackage{
		Name:         strings.TrimSpace(r.Name),
		Slug:         slug,
		Description:  r.Description,
		Price:        r.Price,
		Currency:     strings.ToUpper(r.Currency),
		BillingCycle: r.BillingCycle,
		Features:     pkg.CleanList(r.Features),
		IsPopular:    r.IsPopular,
		IsActive:     true,
		SortOrder:    r.SortOrder,
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	if p.BillingCycle == "" {
		p.BillingCycle = domain.BillingMonthly
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	return p
}

// UpdatePackageRequest is a partial update; nil fields are left unchanged.
type UpdatePackageRequest struct {
	Name         *string   `json:"name"`
	Slug         *string   `json:"slug"`
	Description  *string   `json:"description"`
	Price        *float64  `json:"price"`
	Currency     *string   `json:"currency"`
	BillingCycle *string   `json:"billingCycle"`
	Features     *[]string `json:"features"`
	IsPopular    *bool     `json:"isPopular"`
	IsActive     *bool     `json:"isActive"`
	SortOrder    *int      `json:"sortOrder"`
}

// Validate implements pkg.Validator.
func (r *UpdatePackageRequest) Validate() error {
	c := pkg.NewChecker()
	pkg.CheckOptional(c, "name", r.Name, "required,max=100")
	pkg.CheckOptional(c, "slug", r.Slug, "required,max=120")
	if r.Slug != nil {
		c.Slug("slug", pkg.NormalizeSlug(*r.Slug))
	}
	pkg.CheckOptional(c, "description", r.Description, "max=1000")
	pkg.CheckOptional(c, "price", r.Price, "gte=0")
	if r.Currency != nil {
		c.Check("currency", strings.ToUpper(*r.Currency), "required,iso4217")
	}
	pkg.CheckOptional(c, "billingCycle", r.BillingCycle, "required,"+pkg.OneOf(domain.BillingCycles))
	pkg.CheckOptional(c, "features", r.Features, "max=30,dive,max=200")
	pkg.CheckOptional(c, "sortOrder", r.SortOrder, "gte=0")
	return c.Err()
}

func (r *UpdatePackageRequest) apply(p *domain.HostingPackage) {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.Slug != nil {
		p.Slug = pkg.NormalizeSlug(*r.Slug)
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Currency != nil {
		p.Currency = strings.ToUpper(*r.Currency)
	}
	if r.BillingCycle != nil {
		p.BillingCycle = *r.BillingCycle
	}
	if r.Features != nil {
		p.Features = pkg.CleanList(*r.Features)
	}
	if r.IsPopular != nil {
		p.IsPopular = *r.IsPopular
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	if r.SortOrder != nil {
		p.SortOrder = *r.SortOrder
	}
}

// SelectPackageRequest is the contact data a visitor leaves when choosing a
// package. BillingCycle defaults to the package's own cycle.
type SelectPackageRequest struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	CompanyName  string `json:"companyName"`
	BillingCycle string `json:"billingCycle"`
	Message      string `json:"message"`
}

// Validate implements pkg.Validator.
func (r *SelectPackageRequest) Validate() error {
	c := pkg.NewChecker()
	c.Check("fullName", strings.TrimSpace(r.FullName), "required,min=2,max=100")
	c.Check("email", strings.TrimSpace(r.Email), "required,email,max=255")
	c.Check("phone", r.Phone, "max=40")
	c.Check("companyName", r.CompanyName, "max=150")
	c.Check("billingCycle", r.BillingCycle, "omitempty,"+pkg.OneOf(domain.BillingCycles))
	c.Check("message", r.Message, "max=2000")
	return c.Err()
}
