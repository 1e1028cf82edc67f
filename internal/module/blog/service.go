package blog

import (
	"context"
	"time"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
)

// feedSize is the number of posts exposed in the RSS feed.
const feedSize = 20

// Service defines the blog operations.
type Service interface {
	Create(ctx context.Context, req *CreatePostRequest) (*domain.BlogPost, error)
	List(ctx context.Context, caller *domain.Caller, f Filter) (*domain.PageResult[domain.BlogPost], error)
	Get(ctx context.Context, id string) (*domain.BlogPost, error)
	GetBySlug(ctx context.Context, caller *domain.Caller, slug string) (*domain.BlogPost, error)
	Update(ctx context.Context, id string, req *UpdatePostRequest) (*domain.BlogPost, error)
	Delete(ctx context.Context, id string) error
	Latest(ctx context.Context) ([]domain.BlogPost, error)
}

// blogService implements Service.
type blogService struct {
	repo *store.Repository[domain.BlogPost]
	bg   *pkg.Background
	now  func() time.Time
}

// NewService creates a new blog Service. View counting runs on bg.
func NewService(repo *store.Repository[domain.BlogPost], bg *pkg.Background) Service {
	return &blogService{repo: repo, bg: bg, now: time.Now}
}

// Create persists a post. publishedAt is stamped only when the post is
// created already published.
func (s *blogService) Create(ctx context.Context, req *CreatePostRequest) (*domain.BlogPost, error) {
	slug := pkg.NormalizeSlug(req.Slug)
	if slug == "" {
		slug = pkg.Slugify(req.Title)
	}
	if slug == "" {
		return nil, domain.NewValidationError(map[string]string{"slug": "This field is required"})
	}
	if err := s.ensureSlugFree(ctx, slug, ""); err != nil {
		return nil, err
	}

	post := &domain.BlogPost{
		Title:       req.Title,
		Slug:        slug,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		Category:    req.Category,
		Tags:        pkg.CleanList(req.Tags),
		Author:      req.Author,
		IsPublished: req.IsPublished,
	}
	if post.IsPublished {
		now := s.now()
		post.PublishedAt = &now
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, conflictOnDuplicate(err, slug)
	}
	return post, nil
}

// List returns a page of posts; unpublished posts are visible to privileged
// callers only.
func (s *blogService) List(ctx context.Context, caller *domain.Caller, f Filter) (*domain.PageResult[domain.BlogPost], error) {
	return s.repo.List(ctx, f.Query(caller.Privileged()), f.Page)
}

// Get retrieves a post by ID regardless of visibility.
func (s *blogService) Get(ctx context.Context, id string) (*domain.BlogPost, error) {
	return s.repo.Get(ctx, id)
}

// GetBySlug retrieves a post by slug. For anonymous readers the post must be
// published, and the view counter is bumped without holding up the response.
func (s *blogService) GetBySlug(ctx context.Context, caller *domain.Caller, slug string) (*domain.BlogPost, error) {
	q := pkg.Query{}.Eq("slug", pkg.NormalizeSlug(slug))
	if !caller.Privileged() {
		q = q.Eq("is_published", true)
	}
	post, err := s.repo.FindOne(ctx, q)
	if err != nil {
		return nil, err
	}

	if !caller.Privileged() {
		id := post.ID
		s.bg.Go(ctx, "blog.views", func(ctx context.Context) error {
			return s.repo.Increment(ctx, id, "views", 1)
		})
	}
	return post, nil
}

// Update merges the provided fields. The first transition to published
// stamps publishedAt.
func (s *blogService) Update(ctx context.Context, id string, req *UpdatePostRequest) (*domain.BlogPost, error) {
	post, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Slug != nil {
		if slug := pkg.NormalizeSlug(*req.Slug); slug != post.Slug {
			if err := s.ensureSlugFree(ctx, slug, post.ID); err != nil {
				return nil, err
			}
		}
	}

	req.apply(post)
	if post.IsPublished && post.PublishedAt == nil {
		now := s.now()
		post.PublishedAt = &now
	}
	// Views are only ever bumped by Increment; a stale copy must not reset them.
	if err := s.repo.Save(ctx, post, "views"); err != nil {
		return nil, conflictOnDuplicate(err, post.Slug)
	}
	return post, nil
}

// Delete removes a post by ID.
func (s *blogService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Latest returns the most recently published posts for the feed.
func (s *blogService) Latest(ctx context.Context) ([]domain.BlogPost, error) {
	return s.repo.Find(ctx, Filter{}.Query(false), feedSize)
}

func (s *blogService) ensureSlugFree(ctx context.Context, slug, excludeID string) error {
	taken, err := s.repo.Exists(ctx, "slug", slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return slugConflict(slug)
	}
	return nil
}

func slugConflict(slug string) error {
	return domain.NewConflict("blog post with slug '" + slug + "' already exists")
}

func conflictOnDuplicate(err error, slug string) error {
	if domain.IsAlreadyExists(err) {
		return slugConflict(slug)
	}
	return err
}
