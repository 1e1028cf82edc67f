package technology

import (
	"net/url"
	"strings"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// Filter holds the list parameters accepted by GET /technologies.
type Filter struct {
	Page     pkg.PageParams
	Category string
	Search   string
}

// ParseFilter reads and validates list parameters.
func ParseFilter(values url.Values) (Filter, error) {
	p := pkg.NewParams(values)
	f := Filter{
		Page:     p.Pagination(pkg.DefaultLimit),
		Category: p.Enum("category", domain.TechCategories),
		Search:   p.String("search"),
	}
	return f, p.Err()
}

// Query translates the filter into a storage query.
func (f Filter) Query() pkg.Query {
	q := pkg.Query{}
	if f.Category != "" {
		q = q.Eq("category", f.Category)
	}
	return q.Match(f.Search, "name", "description").OrderBy(pkg.Asc("name"))
}

// CreateTechnologyRequest is the input for adding a technology. The slug is
// derived from the name when omitted.
type CreateTechnologyRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Category    string `json:"category"`
	IconURL     string `json:"iconUrl"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

// Validate implements pkg.Validator.
func (r *CreateTechnologyRequest) Validate() error {
	c := pkg.NewChecker()
	c.Check("name", strings.TrimSpace(r.Name), "required,max=100")
	c.Check("slug", r.Slug, "max=120")
	c.Slug("slug", pkg.NormalizeSlug(r.Slug))
	c.Check("category", r.Category, "required,"+pkg.OneOf(domain.TechCategories))
	c.Check("iconUrl", r.IconURL, "omitempty,url,max=500")
	c.Check("description", r.Description, "max=1000")
	c.Check("website", r.Website, "omitempty,url,max=500")
	return c.Err()
}

// UpdateTechnologyRequest is a partial update; nil fields are left unchanged.
type UpdateTechnologyRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Category    *string `json:"category"`
	IconURL     *string `json:"iconUrl"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
}

// Validate implements pkg.Validator.
func (r *UpdateTechnologyRequest) Validate() error {
	c := pkg.NewChecker()
	pkg.CheckOptional(c, "name", r.Name, "required,max=100")
	pkg.CheckOptional(c, "slug", r.Slug, "required,max=120")
	if r.Slug != nil {
		c.Slug("slug", pkg.NormalizeSlug(*r.Slug))
	}
	pkg.CheckOptional(c, "category", r.Category, "required,"+pkg.OneOf(domain.TechCategories))
	pkg.CheckOptional(c, "iconUrl", r.IconURL, "omitempty,url,max=500")
	pkg.CheckOptional(c, "description", r.Description, "max=1000")
	pkg.CheckOptional(c, "website", r.Website, "omitempty,url,max=500")
	return c.Err()
}

func (r *UpdateTechnologyRequest) apply(t *domain.Technology) {
	if r.Name != nil {
		t.Name = strings.TrimSpace(*r.Name)
	}
	if r.Slug != nil {
		t.Slug = pkg.NormalizeSlug(*r.Slug)
	}
	if r.Category != nil {
		t.Category = *r.Category
	}
	if r.IconURL != nil {
		t.IconURL = *r.IconURL
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.Website != nil {
		t.Website = *r.Website
	}
}
