package faq

import (
	"net/url"
	"strings"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// Filter holds the list parameters accepted by GET /faqs and GET /faqs/all.
type Filter struct {
	Page     pkg.PageParams
	Category string
	Search   string
	IsActive *bool
}

// ParseFilter reads and validates list parameters.
func ParseFilter(values url.Values) (Filter, error) {
	p := pkg.NewParams(values)
	f := Filter{
		Page:     p.Pagination(pkg.DefaultLimit),
		Category: p.String("category"),
		Search:   p.String("search"),
		IsActive: p.Bool("isActive"),
	}
	return f, p.Err()
}

// Query translates the filter into a storage query.
func (f Filter) Query(privileged bool) pkg.Query {
	q := pkg.Query{}
	switch {
	case !privileged:
		q = q.Eq("is_active", true)
	case f.IsActive != nil:
		q = q.Eq("is_active", *f.IsActive)
	}
	if f.Category != "" {
		q = q.Eq("category", f.Category)
	}
	return q.Match(f.Search, "question", "answer").
		OrderBy(pkg.Asc("sort_order"), pkg.Desc("created_at"))
}

// CreateFAQRequest is the input for creating a FAQ. IsActive defaults to true.
type CreateFAQRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Order    int    `json:"order"`
	IsActive *bool  `json:"isActive"`
}

// Validate implements pkg.Validator.
func (r *CreateFAQRequest) Validate() error {
	c := pkg.NewChecker()
	c.Check("question", strings.TrimSpace(r.Question), "required,min=5,max=500")
	c.Check("answer", strings.TrimSpace(r.Answer), "required,max=5000")
	c.Check("category", r.Category, "max=50")
	c.Check("order", r.Order, "gte=0")
	return c.Err()
}

// UpdateFAQRequest is a partial update; nil fields are left unchanged.
type UpdateFAQRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
	Category *string `json:"category"`
	Order    *int    `json:"order"`
	IsActive *bool   `json:"isActive"`
}

// Validate implements pkg.Validator.
func (r *UpdateFAQRequest) Validate() error {
	c := pkg.NewChecker()
	pkg.CheckOptional(c, "question", r.Question, "required,min=5,max=500")
	pkg.CheckOptional(c, "answer", r.Answer, "required,max=5000")
	pkg.CheckOptional(c, "category", r.Category, "max=50")
	pkg.CheckOptional(c, "order", r.Order, "gte=0")
	return c.Err()
}

func (r *UpdateFAQRequest) apply(f *domain.FAQ) {
	if r.Question != nil {
		f.Question = strings.TrimSpace(*r.Question)
	}
	if r.Answer != nil {
		f.Answer = strings.TrimSpace(*r.Answer)
	}
	if r.Category != nil {
		f.Category = strings.TrimSpace(*r.Category)
	}
	if r.Order != nil {
		f.SortOrder = *r.Order
	}
	if r.IsActive != nil {
		f.IsActive = *r.IsActive
	}
}
