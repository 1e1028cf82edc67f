package pkg

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/simp-lee/agencyhub/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Checker accumulates per-field validation failures. Each DTO spells out its
// own checks instead of relying on struct tags.
type Checker struct {
	fields map[string]string
}

// NewChecker returns an empty Checker.
func NewChecker() *Checker {
	return &Checker{fields: make(map[string]string)}
}

// Check validates value against a validator tag expression such as
// "required,max=200" and records the first failing rule for field.
func (c *Checker) Check(field string, value any, tag string) *Checker {
	if _, seen := c.fields[field]; seen {
		return c
	}
	if err := validate.Var(value, tag); err != nil {
		c.fields[field] = describe(err)
	}
	return c
}

// Add records a failure message for field unless one is already present.
func (c *Checker) Add(field, message string) *Checker {
	if _, seen := c.fields[field]; !seen {
		c.fields[field] = message
	}
	return c
}

// Slug records a failure when slug is not lower-case words joined by dashes.
func (c *Checker) Slug(field, slug string) *Checker {
	if slug != "" && !slugPattern.MatchString(slug) {
		c.Add(field, "Must contain only lower-case letters, digits and dashes")
	}
	return c
}

// Err returns a validation error listing every recorded field, or nil.
func (c *Checker) Err() error {
	return domain.NewValidationError(c.fields)
}

// CheckOptional runs tag against *v when v is non-nil. Used by partial
// update DTOs where nil means "leave unchanged".
func CheckOptional[T any](c *Checker, field string, v *T, tag string) {
	if v == nil {
		return
	}
	c.Check(field, *v, tag)
}

// OneOf builds a validator "oneof" tag from the allowed values.
func OneOf(values []string) string {
	return "oneof=" + strings.Join(values, " ")
}

// describe renders the first validator failure as a readable message.
func describe(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fieldMessage(ve[0])
	}
	return "Invalid value"
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "url", "http_url":
		return "Must be a valid URL"
	case "uuid":
		return "Must be a valid id"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if isText(fe) {
			return "Must be at least " + fe.Param() + " characters"
		}
		return "Must be at least " + fe.Param()
	case "max":
		if isText(fe) {
			return "Must be at most " + fe.Param() + " characters"
		}
		return "Must be at most " + fe.Param()
	case "gte":
		return "Must be greater than or equal to " + fe.Param()
	case "lte":
		return "Must be less than or equal to " + fe.Param()
	case "len":
		return "Must be exactly " + fe.Param() + " characters"
	case "iso4217":
		return "Must be an ISO 4217 currency code"
	}
	if fe.Param() != "" {
		return "Failed on " + fe.Tag() + "=" + fe.Param()
	}
	return "Failed on " + fe.Tag()
}

func isText(fe validator.FieldError) bool {
	k := fe.Kind()
	return k == reflect.String || k == reflect.Slice
}

// NormalizeSlug trims and lower-cases a slug before comparison or storage.
func NormalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Slugify derives a slug from free text: lower-case ASCII letters and digits
// separated by single dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case r == '+':
			b.WriteString("plus")
			dash = false
		case r == '#':
			b.WriteString("sharp")
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// CleanList trims every entry, drops empties and duplicates, and never
// returns nil.
func CleanList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
