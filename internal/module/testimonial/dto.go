package testimonial

import (
	"net/url"
	"strings"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// Filter holds the list parameters accepted by GET /testimonials.
type Filter struct {
	Page       pkg.PageParams
	IsFeatured *bool
	Rating     *int
	Search     string
}

// ParseFilter reads and validates list parameters.
func ParseFilter(values url.Values) (Filter, error) {
	p := pkg.NewParams(values)
	f := Filter{
		Page:       p.Pagination(pkg.DefaultLimit),
		IsFeatured: p.Bool("isFeatured"),
		Rating:     p.Int("rating", 1, 5),
		Search:     p.String("search"),
	}
	return f, p.Err()
}

// Query translates the filter into a storage query.
func (f Filter) Query() pkg.Query {
	q := pkg.Query{}
	if f.IsFeatured != nil {
		q = q.Eq("is_featured", *f.IsFeatured)
	}
	if f.Rating != nil {
		q = q.Eq("rating", *f.Rating)
	}
	return q.Match(f.Search, "client_name", "company_name", "content").
		OrderBy(pkg.Desc("created_at"))
}

// CreateTestimonialRequest is the input for creating a testimonial. Rating
// defaults to 5.
type CreateTestimonialRequest struct {
	ClientName  string `json:"clientName"`
	ClientRole  string `json:"clientRole"`
	CompanyName string `json:"companyName"`
	Content     string `json:"content"`
	Rating      *int   `json:"rating"`
	AvatarURL   string `json:"avatarUrl"`
	ProjectName string `json:"projectName"`
	IsFeatured  bool   `json:"isFeatured"`
}

// Validate implements pkg.Validator.
func (r *CreateTestimonialRequest) Validate() error {
	c := pkg.NewChecker()
	c.Check("clientName", strings.TrimSpace(r.ClientName), "required,min=2,max=100")
	c.Check("clientRole", r.ClientRole, "max=100")
	c.Check("companyName", r.CompanyName, "max=150")
	c.Check("content", strings.TrimSpace(r.Content), "required,min=10,max=2000")
	pkg.CheckOptional(c, "rating", r.Rating, "gte=1,lte=5")
	c.Check("avatarUrl", r.AvatarURL, "omitempty,url,max=500")
	c.Check("projectName", r.ProjectName, "max=200")
	return c.Err()
}

func (r *CreateTestimonialRequest) testimonial() *domain.Testimonial {
	t := &domain.Testimonial{
		ClientName:  strings.TrimSpace(r.ClientName),
		ClientRole:  r.ClientRole,
		CompanyName: r.CompanyName,
		Content:     strings.TrimSpace(r.Content),
		Rating:      5,
		AvatarURL:   r.AvatarURL,
		ProjectName: r.ProjectName,
		IsFeatured:  r.IsFeatured,
	}
	if r.Rating != nil {
		t.Rating = *r.Rating
	}
	return t
}

// UpdateTestimonialRequest is a partial update; nil fields are left unchanged.
type UpdateTestimonialRequest struct {
	ClientName  *string `json:"clientName"`
	ClientRole  *string `json:"clientRole"`
	CompanyName *string `json:"companyName"`
	Content     *string `json:"content"`
	Rating      *int    `json:"rating"`
	AvatarURL   *string `json:"avatarUrl"`
	ProjectName *string `json:"projectName"`
	IsFeatured  *bool   `json:"isFeatured"`
}

// Validate implements pkg.Validator.
func (r *UpdateTestimonialRequest) Validate() error {
	c := pkg.NewChecker()
	pkg.CheckOptional(c, "clientName", r.ClientName, "required,min=2,max=100")
	pkg.CheckOptional(c, "clientRole", r.ClientRole, "max=100")
	pkg.CheckOptional(c, "companyName", r.CompanyName, "max=150")
	pkg.CheckOptional(c, "content", r.Content, "required,min=10,max=2000")
	pkg.CheckOptional(c, "rating", r.Rating, "gte=1,lte=5")
	pkg.CheckOptional(c, "avatarUrl", r.AvatarURL, "omitempty,url,max=500")
	pkg.CheckOptional(c, "projectName", r.ProjectName, "max=200")
	return c.Err()
}

func (r *UpdateTestimonialRequest) apply(t *domain.Testimonial) {
	if r.ClientName != nil {
		t.ClientName = strings.TrimSpace(*r.ClientName)
	}
	if r.ClientRole != nil {
		t.ClientRole = *r.ClientRole
	}
	if r.CompanyName != nil {
		t.CompanyName = *r.CompanyName
	}
	if r.Content != nil {
		t.Content = strings.TrimSpace(*r.Content)
	}
	if r.Rating != nil {
		t.Rating = *r.Rating
	}
	if r.AvatarURL != nil {
		t.AvatarURL = *r.AvatarURL
	}
	if r.ProjectName != nil {
		t.ProjectName = *r.ProjectName
	}
	if r.IsFeatured != nil {
		t.IsFeatured = *r.IsFeatured
	}
}
