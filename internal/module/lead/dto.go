package lead

import (
	"net/url"
	"strings"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// Filter holds the list parameters accepted by GET /leads.
type Filter struct {
	Page   pkg.PageParams
	Status string
	Source string
	Search string
}

// ParseFilter reads and validates list parameters.
func ParseFilter(values url.Values) (Filter, error) {
	p := pkg.NewParams(values)
	f := Filter{
		Page:   p.Pagination(pkg.DefaultLimit),
		Status: p.Enum("status", domain.LeadStatuses),
		Source: p.Enum("source", domain.LeadSources),
		Search: p.String("search"),
	}
	return f, p.Err()
}

// Query translates the filter into a storage query.
func (f Filter) Query() pkg.Query {
	q := pkg.Query{}
	if f.Status != "" {
		q = q.Eq("status", f.Status)
	}
	if f.Source != "" {
		q = q.Eq("source", f.Source)
	}
	return q.Match(f.Search, "full_name", "email", "company_name").
		OrderBy(pkg.Desc("created_at"))
}

// CreateLeadRequest is the contact form payload. Source defaults to
// contact_form.
type CreateLeadRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CompanyName string `json:"companyName"`
	Service     string `json:"service"`
	Budget      string `json:"budget"`
	Message     string `json:"message"`
	Source      string `json:"source"`
}

// Validate implements pkg.Validator.
func (r *CreateLeadRequest) Validate() error {
	c := pkg.NewChecker()
	c.Check("fullName", strings.TrimSpace(r.FullName), "required,min=2,max=100")
	c.Check("email", strings.TrimSpace(r.Email), "required,email,max=255")
	c.Check("phone", r.Phone, "max=40")
	c.Check("companyName", r.CompanyName, "max=150")
	c.Check("service", r.Service, "max=100")
	c.Check("budget", r.Budget, "max=50")
	c.Check("message", r.Message, "max=5000")
	c.Check("source", r.Source, "omitempty,"+pkg.OneOf(domain.LeadSources))
	return c.Err()
}

// UpdateLeadRequest is a partial update used by the CRM; nil fields are left
// unchanged.
type UpdateLeadRequest struct {
	FullName    *string `json:"fullName"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	CompanyName *string `json:"companyName"`
	Service     *string `json:"service"`
	Budget      *string `json:"budget"`
	Message     *string `json:"message"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
}

// Validate implements pkg.Validator.
func (r *UpdateLeadRequest) Validate() error {
	c := pkg.NewChecker()
	pkg.CheckOptional(c, "fullName", r.FullName, "required,min=2,max=100")
	pkg.CheckOptional(c, "email", r.Email, "required,email,max=255")
	pkg.CheckOptional(c, "phone", r.Phone, "max=40")
	pkg.CheckOptional(c, "companyName", r.CompanyName, "max=150")
	pkg.CheckOptional(c, "service", r.Service, "max=100")
	pkg.CheckOptional(c, "budget", r.Budget, "max=50")
	pkg.CheckOptional(c, "message", r.Message, "max=5000")
	pkg.CheckOptional(c, "status", r.Status, "required,"+pkg.OneOf(domain.LeadStatuses))
	pkg.CheckOptional(c, "notes", r.Notes, "max=5000")
	return c.Err()
}

func (r *UpdateLeadRequest) apply(l *domain.Lead) {
	if r.FullName != nil {
		l.FullName = strings.TrimSpace(*r.FullName)
	}
	if r.Email != nil {
		l.Email = pkg.NormalizeEmail(*r.Email)
	}
	if r.Phone != nil {
		l.Phone = *r.Phone
	}
	if r.CompanyName != nil {
		l.CompanyName = *r.CompanyName
	}
	if r.Service != nil {
		l.Service = *r.Service
	}
	if r.Budget != nil {
		l.Budget = *r.Budget
	}
	if r.Message != nil {
		l.Message = *r.Message
	}
	if r.Status != nil {
		l.Status = *r.Status
	}
	if r.Notes != nil {
		l.Notes = *r.Notes
	}
}
