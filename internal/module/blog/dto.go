package blog

import (
	"net/url"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// Filter holds the list parameters accepted by GET /blog and GET /blog/all.
type Filter struct {
	Page        pkg.PageParams
	Category    string
	Tag         string
	Search      string
	IsPublished *bool
}

// ParseFilter reads and validates list parameters.
func ParseFilter(values url.Values) (Filter, error) {
	p := pkg.NewParams(values)
	f := Filter{
		Page:        p.Pagination(pkg.DefaultLimit),
		Category:    p.String("category"),
		Tag:         p.String("tag"),
		Search:      p.String("search"),
		IsPublished: p.Bool("isPublished"),
	}
	return f, p.Err()
}

// Query translates the filter into a storage query. Anonymous callers only
// ever see published posts, whatever isPublished they ask for.
func (f Filter) Query(privileged bool) pkg.Query {
	q := pkg.Query{}
	switch {
	case !privileged:
		q = q.Eq("is_published", true)
	case f.IsPublished != nil:
		q = q.Eq("is_published", *f.IsPublished)
	}
	if f.Category != "" {
		q = q.Eq("category", f.Category)
	}
	if f.Tag != "" {
		q = q.Contains("tags", f.Tag)
	}
	return q.Match(f.Search, "title", "excerpt").
		OrderBy(pkg.Desc("published_at").Last(), pkg.Desc("created_at"))
}

// CreatePostRequest is the input for creating a blog post.
type CreatePostRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	CoverImage  string   `json:"coverImage"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Author      string   `json:"author"`
	IsPublished bool     `json:"isPublished"`
}

// Validate implements pkg.Validator.
func (r *CreatePostRequest) Validate() error {
	c := pkg.NewChecker()
	c.Check("title", r.Title, "required,max=200")
	c.Check("slug", r.Slug, "max=200")
	c.Slug("slug", pkg.NormalizeSlug(r.Slug))
	c.Check("excerpt", r.Excerpt, "max=500")
	c.Check("content", r.Content, "required")
	c.Check("coverImage", r.CoverImage, "omitempty,url,max=500")
	c.Check("category", r.Category, "max=50")
	c.Check("tags", r.Tags, "max=20,dive,max=30")
	c.Check("author", r.Author, "max=100")
	return c.Err()
}

// UpdatePostRequest is a partial update; nil fields are left unchanged.
type UpdatePostRequest struct {
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Excerpt     *string   `json:"excerpt"`
	Content     *string   `json:"content"`
	CoverImage  *string   `json:"coverImage"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	Author      *string   `json:"author"`
	IsPublished *bool     `json:"isPublished"`
}

// Validate implements pkg.Validator.
func (r *UpdatePostRequest) Validate() error {
	c := pkg.NewChecker()
	pkg.CheckOptional(c, "title", r.Title, "required,max=200")
	pkg.CheckOptional(c, "slug", r.Slug, "required,max=200")
	if r.Slug != nil {
		c.Slug("slug", pkg.NormalizeSlug(*r.Slug))
	}
	pkg.CheckOptional(c, "excerpt", r.Excerpt, "max=500")
	pkg.CheckOptional(c, "content", r.Content, "required")
	pkg.CheckOptional(c, "coverImage", r.CoverImage, "omitempty,url,max=500")
	pkg.CheckOptional(c, "category", r.Category, "max=50")
	pkg.CheckOptional(c, "tags", r.Tags, "max=20,dive,max=30")
	pkg.CheckOptional(c, "author", r.Author, "max=100")
	return c.Err()
}

func (r *UpdatePostRequest) apply(p *domain.BlogPost) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Slug != nil {
		p.Slug = pkg.NormalizeSlug(*r.Slug)
	}
	if r.Excerpt != nil {
		p.Excerpt = *r.Excerpt
	}
	if r.Content != nil {
		p.Content = *r.Content
	}
	if r.CoverImage != nil {
		p.CoverImage = *r.CoverImage
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Tags != nil {
		p.Tags = pkg.CleanList(*r.Tags)
	}
	if r.Author != nil {
		p.Author = *r.Author
	}
	if r.IsPublished != nil {
		p.IsPublished = *r.IsPublished
	}
}
