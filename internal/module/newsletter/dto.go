package newsletter

import (
	"net/url"
	"strings"

	"github.com/simp-lee/agencyhub/internal/pkg"
)

// Filter holds the list parameters accepted by GET /newsletter.
type Filter struct {
	Page     pkg.PageParams
	IsActive *bool
	Search   string
}

// ParseFilter reads and validates list parameters.
func ParseFilter(values url.Values) (Filter, error) {
	p := pkg.NewParams(values)
	f := Filter{
		Page:     p.Pagination(pkg.DefaultLimit),
		IsActive: p.Bool("isActive"),
		Search:   p.String("search"),
	}
	return f, p.Err()
}

// Query translates the filter into a storage query.
func (f Filter) Query() pkg.Query {
	q := pkg.Query{}
	if f.IsActive != nil {
		q = q.Eq("is_active", *f.IsActive)
	}
	return q.Match(f.Search, "email").OrderBy(pkg.Desc("created_at"))
}

// SubscribeRequest is the public sign-up payload. Source defaults to
// "website".
type SubscribeRequest struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

// Validate implements pkg.Validator.
func (r *SubscribeRequest) Validate() error {
	c := pkg.NewChecker()
	c.Check("email", strings.TrimSpace(r.Email), "required,email,max=255")
	c.Check("source", r.Source, "max=50")
	return c.Err()
}

// UnsubscribeRequest is the public opt-out payload.
type UnsubscribeRequest struct {
	Email string `json:"email"`
}

// Validate implements pkg.Validator.
func (r *UnsubscribeRequest) Validate() error {
	return pkg.NewChecker().Check("email", strings.TrimSpace(r.Email), "required,email,max=255").Err()
}
