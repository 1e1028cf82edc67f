package pkg

import (
	"testing"

	"github.com/simp-lee/agencyhub/internal/domain"
)

func TestChecker_CollectsFirstFailurePerField(t *testing.T) {
	c := NewChecker()
	c.Check("title", "", "required,max=5")
	c.Check("title", "way too long", "max=5")
	c.Check("email", "nope", "required,email")
	c.Check("rating", 7, "gte=1,lte=5")
	c.Check("ok", "fine", "required")

	err := c.Err()
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := err.(*domain.AppError).Fields
	want := map[string]string{
		"title":  "This field is required",
		"email":  "Must be a valid email address",
		"rating": "Must be less than or equal to 5",
	}
	if len(fields) != len(want) {
		t.Fatalf("fields = %v; want %v", fields, want)
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("fields[%q] = %q; want %q", k, fields[k], v)
		}
	}
}

func TestChecker_NoFailuresIsNil(t *testing.T) {
	c := NewChecker()
	c.Check("name", "Ada", "required,max=100")
	if err := c.Err(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestCheckOptional(t *testing.T) {
	c := NewChecker()
	var absent *string
	empty := ""
	CheckOptional(c, "absent", absent, "required")
	CheckOptional(c, "empty", &empty, "required")

	fields := c.Err().(*domain.AppError).Fields
	if _, ok := fields["absent"]; ok {
		t.Error("nil pointer should be skipped")
	}
	if fields["empty"] != "This field is required" {
		t.Errorf("empty = %q", fields["empty"])
	}
}

func TestChecker_OneOfAndSlug(t *testing.T) {
	c := NewChecker()
	c.Check("category", "desktop", OneOf([]string{"web", "mobile"}))
	c.Slug("slug", "Not A Slug")
	c.Slug("other", "good-slug-2")

	fields := c.Err().(*domain.AppError).Fields
	if fields["category"] != "Must be one of: web, mobile" {
		t.Errorf("category = %q", fields["category"])
	}
	if _, ok := fields["slug"]; !ok {
		t.Error("expected slug failure")
	}
	if _, ok := fields["other"]; ok {
		t.Error("valid slug should pass")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Node.js", "node-js"},
		{"  Vue 3 ", "vue-3"},
		{"C++", "cplusplus"},
		{"C#", "csharp"},
		{"--Tailwind CSS--", "tailwind-css"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanList(t *testing.T) {
	got := CleanList([]string{" go ", "", "go", "react"})
	if len(got) != 2 || got[0] != "go" || got[1] != "react" {
		t.Errorf("CleanList = %v", got)
	}
	if CleanList(nil) == nil {
		t.Error("CleanList(nil) should be an empty slice")
	}
}

func TestReorderRequest(t *testing.T) {
	a := "0192f1c4-5b7a-7c3e-9d2f-1a2b3c4d5e6f"
	b := "0192f1c4-5b7a-7c3e-9d2f-1a2b3c4d5e70"

	req := &ReorderRequest{IDs: []string{a, b}}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pos := req.Positions()
	if pos[0] != (ReorderItem{ID: a, Order: 0}) || pos[1] != (ReorderItem{ID: b, Order: 1}) {
		t.Errorf("Positions = %+v", pos)
	}

	for name, bad := range map[string]*ReorderRequest{
		"empty":     {},
		"duplicate": {IDs: []string{a, a}},
		"both":      {IDs: []string{a}, Items: []ReorderItem{{ID: b, Order: 1}}},
		"negative":  {Items: []ReorderItem{{ID: a, Order: -1}}},
		"bad id":    {IDs: []string{"nope"}},
	} {
		if !domain.IsValidation(bad.Validate()) {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
