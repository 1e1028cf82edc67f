package team

import (
	"net/url"
	"strings"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// defaultLimit is larger than elsewhere so the public team page fits on one
// request.
const defaultLimit = 20

// Filter holds the list parameters accepted by GET /team and GET /team/all.
type Filter struct {
	Page       pkg.PageParams
	Department string
	Search     string
	IsActive   *bool
}

// ParseFilter reads and validates list parameters.
func ParseFilter(values url.Values) (Filter, error) {
	p := pkg.NewParams(values)
	f := Filter{
		Page:       p.Pagination(defaultLimit),
		Department: p.Enum("department", domain.Departments),
		Search:     p.String("search"),
		IsActive:   p.Bool("isActive"),
	}
	return f, p.Err()
}

// Query translates the filter into a storage query. Inactive members are
// hidden from anonymous callers.
func (f Filter) Query(privileged bool) pkg.Query {
	q := pkg.Query{}
	switch {
	case !privileged:
		q = q.Eq("is_active", true)
	case f.IsActive != nil:
		q = q.Eq("is_active", *f.IsActive)
	}
	if f.Department != "" {
		q = q.Eq("department", f.Department)
	}
	return q.Match(f.Search, "full_name", "position").
		OrderBy(pkg.Asc("sort_order"), pkg.Desc("created_at"))
}

// CreateMemberRequest is the input for adding a team member. IsActive
// defaults to true.
type CreateMemberRequest struct {
	FullName    string `json:"fullName"`
	Position    string `json:"position"`
	Department  string `json:"department"`
	Bio         string `json:"bio"`
	PhotoURL    string `json:"photoUrl"`
	Email       string `json:"email"`
	LinkedinURL string `json:"linkedinUrl"`
	GithubURL   string `json:"githubUrl"`
	TwitterURL  string `json:"twitterUrl"`
	Order       int    `json:"order"`
	IsActive    *bool  `json:"isActive"`
}

// Validate implements pkg.Validator.
func (r *CreateMemberRequest) Validate() error {
	c := pkg.NewChecker()
	c.Check("fullName", strings.TrimSpace(r.FullName), "required,min=2,max=100")
	c.Check("position", strings.TrimSpace(r.Position), "required,max=100")
	c.Check("department", r.Department, "omitempty,"+pkg.OneOf(domain.Departments))
	c.Check("bio", r.Bio, "max=2000")
	c.Check("photoUrl", r.PhotoURL, "omitempty,url,max=500")
	c.Check("email", r.Email, "omitempty,email,max=255")
	c.Check("linkedinUrl", r.LinkedinURL, "omitempty,url,max=500")
	c.Check("githubUrl", r.GithubURL, "omitempty,url,max=500")
	c.Check("twitterUrl", r.TwitterURL, "omitempty,url,max=500")
	c.Check("order", r.Order, "gte=0")
	return c.Err()
}

func (r *CreateMemberRequest) member() *domain.TeamMember {
	m := &domain.TeamMember{
		FullName:    strings.TrimSpace(r.FullName),
		Position:    strings.TrimSpace(r.Position),
		Department:  r.Department,
		Bio:         r.Bio,
		PhotoURL:    r.PhotoURL,
		Email:       pkg.NormalizeEmail(r.Email),
		LinkedinURL: r.LinkedinURL,
		GithubURL:   r.GithubURL,
		TwitterURL:  r.TwitterURL,
		SortOrder:   r.Order,
		IsActive:    true,
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

// UpdateMemberRequest is a partial update; nil fields are left unchanged.
type UpdateMemberRequest struct {
	FullName    *string `json:"fullName"`
	Position    *string `json:"position"`
	Department  *string `json:"department"`
	Bio         *string `json:"bio"`
	PhotoURL    *string `json:"photoUrl"`
	Email       *string `json:"email"`
	LinkedinURL *string `json:"linkedinUrl"`
	GithubURL   *string `json:"githubUrl"`
	TwitterURL  *string `json:"twitterUrl"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

// Validate implements pkg.Validator.
func (r *UpdateMemberRequest) Validate() error {
	c := pkg.NewChecker()
	pkg.CheckOptional(c, "fullName", r.FullName, "required,min=2,max=100")
	pkg.CheckOptional(c, "position", r.Position, "required,max=100")
	pkg.CheckOptional(c, "department", r.Department, "omitempty,"+pkg.OneOf(domain.Departments))
	pkg.CheckOptional(c, "bio", r.Bio, "max=2000")
	pkg.CheckOptional(c, "photoUrl", r.PhotoURL, "omitempty,url,max=500")
	pkg.CheckOptional(c, "email", r.Email, "omitempty,email,max=255")
	pkg.CheckOptional(c, "linkedinUrl", r.LinkedinURL, "omitempty,url,max=500")
	pkg.CheckOptional(c, "githubUrl", r.GithubURL, "omitempty,url,max=500")
	pkg.CheckOptional(c, "twitterUrl", r.TwitterURL, "omitempty,url,max=500")
	pkg.CheckOptional(c, "order", r.Order, "gte=0")
	return c.Err()
}

func (r *UpdateMemberRequest) apply(m *domain.TeamMember) {
	if r.FullName != nil {
		m.FullName = strings.TrimSpace(*r.FullName)
	}
	if r.Position != nil {
		m.Position = strings.TrimSpace(*r.Position)
	}
	if r.Department != nil {
		m.Department = *r.Department
	}
	if r.Bio != nil {
		m.Bio = *r.Bio
	}
	if r.PhotoURL != nil {
		m.PhotoURL = *r.PhotoURL
	}
	if r.Email != nil {
		m.Email = pkg.NormalizeEmail(*r.Email)
	}
	if r.LinkedinURL != nil {
		m.LinkedinURL = *r.LinkedinURL
	}
	if r.GithubURL != nil {
		m.GithubURL = *r.GithubURL
	}
	if r.TwitterURL != nil {
		m.TwitterURL = *r.TwitterURL
	}
	if r.Order != nil {
		m.SortOrder = *r.Order
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}
