package technology

import (
	"context"
	"strings"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
)

// Service defines the technology operations.
type Service interface {
	Create(ctx context.Context, req *CreateTechnologyRequest) (*domain.Technology, error)
	List(ctx context.Context, f Filter) (*domain.PageResult[domain.Technology], error)
	Get(ctx context.Context, id string) (*domain.Technology, error)
	Update(ctx context.Context, id string, req *UpdateTechnologyRequest) (*domain.Technology, error)
	Delete(ctx context.Context, id string) error
}

// technologyService implements Service.
type technologyService struct {
	repo *store.Repository[domain.Technology]
}

// NewService creates a new technology Service.
func NewService(repo *store.Repository[domain.Technology]) Service {
	return &technologyService{repo: repo}
}

func (s *technologyService) Create(ctx context.Context, req *CreateTechnologyRequest) (*domain.Technology, error) {
	slug := pkg.NormalizeSlug(req.Slug)
	if slug == "" {
		slug = pkg.Slugify(req.Name)
	}
	if slug == "" {
		return nil, domain.NewValidationError(map[string]string{"slug": "This field is required"})
	}
	if err := s.ensureSlugFree(ctx, slug, ""); err != nil {
		return nil, err
	}

	t := &domain.Technology{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Category:    req.Category,
		IconURL:     req.IconURL,
		Description: req.Description,
		Website:     req.Website,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, conflictOnDuplicate(err, slug)
	}
	return t, nil
}

func (s *technologyService) List(ctx context.Context, f Filter) (*domain.PageResult[domain.Technology], error) {
	return s.repo.List(ctx, f.Query(), f.Page)
}

func (s *technologyService) Get(ctx context.Context, id string) (*domain.Technology, error) {
	return s.repo.Get(ctx, id)
}

func (s *technologyService) Update(ctx context.Context, id string, req *UpdateTechnologyRequest) (*domain.Technology, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Slug != nil {
		if slug := pkg.NormalizeSlug(*req.Slug); slug != t.Slug {
			if err := s.ensureSlugFree(ctx, slug, t.ID); err != nil {
				return nil, err
			}
		}
	}

	req.apply(t)
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, conflictOnDuplicate(err, t.Slug)
	}
	return t, nil
}

// Delete removes a technology. Projects listing it by name keep the entry.
func (s *technologyService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *technologyService) ensureSlugFree(ctx context.Context, slug, excludeID string) error {
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
	return domain.NewConflict("technology with slug '" + slug + "' already exists")
}

func conflictOnDuplicate(err error, slug string) error {
	if domain.IsAlreadyExists(err) {
		return slugConflict(slug)
	}
	return err
}
