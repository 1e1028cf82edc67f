package pkg

import (
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/simp-lee/agencyhub/internal/domain"
)

const (
	defaultPage     = 1
	DefaultLimit    = 10
	MaxLimit        = 100
	maxFilterLength = 100
)

// PageParams is a validated page/limit pair.
type PageParams struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Paginate returns a GORM scope that applies LIMIT and OFFSET.
func Paginate(p PageParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

// Params reads list filters from query parameters. Unlike silent clamping,
// every malformed value is recorded and reported by Err as a validation error.
// Unknown parameters are ignored.
type Params struct {
	values url.Values
	check  *Checker
}

// NewParams wraps the request query values.
func NewParams(values url.Values) *Params {
	return &Params{values: values, check: NewChecker()}
}

func (p *Params) raw(key string) (string, bool) {
	v := strings.TrimSpace(p.values.Get(key))
	return v, v != ""
}

// Pagination reads page (default 1, at least 1) and limit (default
// defaultLimit, between 1 and MaxLimit).
func (p *Params) Pagination(defaultLimit int) PageParams {
	out := PageParams{Page: defaultPage, Limit: defaultLimit}
	if v, ok := p.raw("page"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			p.check.Add("page", "Must be an integer greater than or equal to 1")
		} else {
			out.Page = n
		}
	}
	if v, ok := p.raw("limit"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxLimit {
			p.check.Add("limit", "Must be an integer between 1 and "+strconv.Itoa(MaxLimit))
		} else {
			out.Limit = n
		}
	}
	return out
}

// String returns a trimmed free-text value, or "" when absent.
func (p *Params) String(key string) string {
	v, ok := p.raw(key)
	if !ok {
		return ""
	}
	if len(v) > maxFilterLength {
		p.check.Add(key, "Must be at most "+strconv.Itoa(maxFilterLength)+" characters")
		return ""
	}
	return v
}

// Enum returns the value when it is one of allowed, or "" when absent.
func (p *Params) Enum(key string, allowed []string) string {
	v, ok := p.raw(key)
	if !ok {
		return ""
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	p.check.Add(key, "Must be one of: "+strings.Join(allowed, ", "))
	return ""
}

// Bool accepts the literal strings "true" and "false". Absent yields nil.
func (p *Params) Bool(key string) *bool {
	v, ok := p.raw(key)
	if !ok {
		return nil
	}
	switch v {
	case "true":
		b := true
		return &b
	case "false":
		b := false
		return &b
	}
	p.check.Add(key, "Must be true or false")
	return nil
}

// Int returns an integer within [min, max]. Absent yields nil.
func (p *Params) Int(key string, min, max int) *int {
	v, ok := p.raw(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min || n > max {
		p.check.Add(key, "Must be an integer between "+strconv.Itoa(min)+" and "+strconv.Itoa(max))
		return nil
	}
	return &n
}

// Err reports every malformed parameter seen so far.
func (p *Params) Err() error {
	return p.check.Err()
}

// NewPageResult builds a page from a fetched slice and the total match count.
func NewPageResult[T any](items []T, total int64, p PageParams) *domain.PageResult[T] {
	return domain.NewPage(items, total, p.Page, p.Limit)
}
