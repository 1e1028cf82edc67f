package offering

import (
	"net/url"
	"strings"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// Filter holds the list parameters accepted by GET /services and
// GET /services/all.
type Filter struct {
	Page     pkg.PageParams
	Search   string
	IsActive *bool
}

// ParseFilter reads and validates list parameters.
func ParseFilter(values url.Values) (Filter, error) {
	p := pkg.NewParams(values)
	f := Filter{
		Page:     p.Pagination(pkg.DefaultLimit),
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
	return q.Match(f.Search, "title", "short_description").
		OrderBy(pkg.Asc("sort_order"), pkg.Desc("created_at"))
}

// CreateServiceRequest is the input for creating a service offering.
type CreateServiceRequest struct {
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	ShortDescription string   `json:"shortDescription"`
	Description      string   `json:"description"`
	Icon             string   `json:"icon"`
	Features         []string `json:"features"`
	Order            int      `json:"order"`
	IsActive         *bool    `json:"isActive"`
}

// Validate implements pkg.Validator.
func (r *CreateServiceRequest) Validate() error {
	c := pkg.NewChecker()
	c.Check("title", strings.TrimSpace(r.Title), "required,max=150")
	c.Check("slug", r.Slug, "max=150")
	c.Slug("slug", pkg.NormalizeSlug(r.Slug))
	c.Check("shortDescription", r.ShortDescription, "required,max=500")
	c.Check("description", r.Description, "max=10000")
	c.Check("icon", r.Icon, "max=100")
	c.Check("features", r.Features, "max=30,dive,max=200")
	c.Check("order", r.Order, "gte=0")
	return c.Err()
}

// UpdateServiceRequest is a partial update; nil fields are left unchanged.
type UpdateServiceRequest struct {
	Title            *string   `json:"title"`
	Slug             *string   `json:"slug"`
	ShortDescription *string   `json:"shortDescription"`
	Description      *string   `json:"description"`
	Icon             *string   `json:"icon"`
	Features         *[]string `json:"features"`
	Order            *int      `json:"order"`
	IsActive         *bool     `json:"isActive"`
}

// Validate implements pkg.Validator.
func (r *UpdateServiceRequest) Validate() error {
	c := pkg.NewChecker()
	pkg.CheckOptional(c, "title", r.Title, "required,max=150")
	pkg.CheckOptional(c, "slug", r.Slug, "required,max=150")
	if r.Slug != nil {
		c.Slug("slug", pkg.NormalizeSlug(*r.Slug))
	}
	pkg.CheckOptional(c, "shortDescription", r.ShortDescription, "required,max=500")
	pkg.CheckOptional(c, "description", r.Description, "max=10000")
	pkg.CheckOptional(c, "icon", r.Icon, "max=100")
	pkg.CheckOptional(c, "features", r.Features, "max=30,dive,max=200")
	pkg.CheckOptional(c, "order", r.Order, "gte=0")
	return c.Err()
}

func (r *UpdateServiceRequest) apply(s *domain.Service) {
	if r.Title != nil {
		s.Title = strings.TrimSpace(*r.Title)
	}
	if r.Slug != nil {
		s.Slug = pkg.NormalizeSlug(*r.Slug)
	}
	if r.ShortDescription != nil {
		s.ShortDescription = *r.ShortDescription
	}
	if r.Description != nil {
		s.Description = *r.Description
	}
	if r.Icon != nil {
		s.Icon = *r.Icon
	}
	if r.Features != nil {
		s.Features = pkg.CleanList(*r.Features)
	}
	if r.Order != nil {
		s.SortOrder = *r.Order
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}
