package project

import (
	"net/url"
	"time"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// Filter holds the list parameters accepted by GET /projects.
type Filter struct {
	Page       pkg.PageParams
	Category   string
	IsFeatured *bool
	Technology string
	Search     string
}

// ParseFilter reads and validates list parameters.
func ParseFilter(values url.Values) (Filter, error) {
	p := pkg.NewParams(values)
	f := Filter{
		Page:       p.Pagination(pkg.DefaultLimit),
		Category:   p.Enum("category", domain.ProjectCategories),
		IsFeatured: p.Bool("isFeatured"),
		Technology: p.String("technology"),
		Search:     p.String("search"),
	}
	return f, p.Err()
}

// Query translates the filter into a storage query.
func (f Filter) Query() pkg.Query {
	q := pkg.Query{}
	if f.Category != "" {
		q = q.Eq("category", f.Category)
	}
	if f.IsFeatured != nil {
		q = q.Eq("is_featured", *f.IsFeatured)
	}
	if f.Technology != "" {
		q = q.Contains("technologies", f.Technology)
	}
	return q.Match(f.Search, "title", "description", "client_name").
		OrderBy(pkg.Desc("created_at"))
}

// CreateProjectRequest is the input for creating a project. An empty slug is
// derived from the title.
type CreateProjectRequest struct {
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description"`
	Content      string     `json:"content"`
	Category     string     `json:"category"`
	ClientName   string     `json:"clientName"`
	CoverImage   string     `json:"coverImage"`
	Gallery      []string   `json:"gallery"`
	Technologies []string   `json:"technologies"`
	LiveURL      string     `json:"liveUrl"`
	RepoURL      string     `json:"repoUrl"`
	IsFeatured   bool       `json:"isFeatured"`
	CompletedAt  *time.Time `json:"completedAt"`
}

// Validate implements pkg.Validator.
func (r *CreateProjectRequest) Validate() error {
	c := pkg.NewChecker()
	c.Check("title", r.Title, "required,max=200")
	c.Check("slug", r.Slug, "max=200")
	c.Slug("slug", pkg.NormalizeSlug(r.Slug))
	c.Check("description", r.Description, "required,max=1000")
	c.Check("category", r.Category, "required,"+pkg.OneOf(domain.ProjectCategories))
	c.Check("clientName", r.ClientName, "max=150")
	c.Check("coverImage", r.CoverImage, "omitempty,url,max=500")
	c.Check("gallery", r.Gallery, "max=20,dive,url")
	c.Check("technologies", r.Technologies, "max=30,dive,max=50")
	c.Check("liveUrl", r.LiveURL, "omitempty,url,max=500")
	c.Check("repoUrl", r.RepoURL, "omitempty,url,max=500")
	return c.Err()
}

// UpdateProjectRequest is a partial update; nil fields are left unchanged.
type UpdateProjectRequest struct {
	Title        *string    `json:"title"`
	Slug         *string    `json:"slug"`
	Description  *string    `json:"description"`
	Content      *string    `json:"content"`
	Category     *string    `json:"category"`
	ClientName   *string    `json:"clientName"`
	CoverImage   *string    `json:"coverImage"`
	Gallery      *[]string  `json:"gallery"`
	Technologies *[]string  `json:"technologies"`
	LiveURL      *string    `json:"liveUrl"`
	RepoURL      *string    `json:"repoUrl"`
	IsFeatured   *bool      `json:"isFeatured"`
	CompletedAt  *time.Time `json:"completedAt"`
}

// Validate implements pkg.Validator.
func (r *UpdateProjectRequest) Validate() error {
	c := pkg.NewChecker()
	pkg.CheckOptional(c, "title", r.Title, "required,max=200")
	pkg.CheckOptional(c, "slug", r.Slug, "required,max=200")
	if r.Slug != nil {
		c.Slug("slug", pkg.NormalizeSlug(*r.Slug))
	}
	pkg.CheckOptional(c, "description", r.Description, "required,max=1000")
	pkg.CheckOptional(c, "category", r.Category, "required,"+pkg.OneOf(domain.ProjectCategories))
	pkg.CheckOptional(c, "clientName", r.ClientName, "max=150")
	pkg.CheckOptional(c, "coverImage", r.CoverImage, "omitempty,url,max=500")
	pkg.CheckOptional(c, "gallery", r.Gallery, "max=20,dive,url")
	pkg.CheckOptional(c, "technologies", r.Technologies, "max=30,dive,max=50")
	pkg.CheckOptional(c, "liveUrl", r.LiveURL, "omitempty,url,max=500")
	pkg.CheckOptional(c, "repoUrl", r.RepoURL, "omitempty,url,max=500")
	return c.Err()
}

func (r *UpdateProjectRequest) apply(p *domain.Project) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Slug != nil {
		p.Slug = pkg.NormalizeSlug(*r.Slug)
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Content != nil {
		p.Content = *r.Content
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.ClientName != nil {
		p.ClientName = *r.ClientName
	}
	if r.CoverImage != nil {
		p.CoverImage = *r.CoverImage
	}
	if r.Gallery != nil {
		p.Gallery = pkg.CleanList(*r.Gallery)
	}
	if r.Technologies != nil {
		p.Technologies = pkg.CleanList(*r.Technologies)
	}
	if r.LiveURL != nil {
		p.LiveURL = *r.LiveURL
	}
	if r.RepoURL != nil {
		p.RepoURL = *r.RepoURL
	}
	if r.IsFeatured != nil {
		p.IsFeatured = *r.IsFeatured
	}
	if r.CompletedAt != nil {
		p.CompletedAt = r.CompletedAt
	}
}
