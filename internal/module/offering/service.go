package offering

import (
	"context"
	"strings"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
)

// Service defines the operations on the agency's service offerings.
type Service interface {
	Create(ctx context.Context, req *CreateServiceRequest) (*domain.Service, error)
	List(ctx context.Context, caller *domain.Caller, f Filter) (*domain.PageResult[domain.Service], error)
	Get(ctx context.Context, id string) (*domain.Service, error)
	GetBySlug(ctx context.Context, caller *domain.Caller, slug string) (*domain.Service, error)
	Update(ctx context.Context, id string, req *UpdateServiceRequest) (*domain.Service, error)
	Delete(ctx context.Context, id string) error
}

// offeringService implements Service.
type offeringService struct {
	repo *store.Repository[domain.Service]
}

// NewService creates a new offering Service.
func NewService(repo *store.Repository[domain.Service]) Service {
	return &offeringService{repo: repo}
}

func (s *offeringService) Create(ctx context.Context, req *CreateServiceRequest) (*domain.Service, error) {
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

	svc := &domain.Service{
		Title:            strings.TrimSpace(req.Title),
		Slug:             slug,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Icon:             req.Icon,
		Features:         pkg.CleanList(req.Features),
		SortOrder:        req.Order,
		IsActive:         true,
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, conflictOnDuplicate(err, slug)
	}
	return svc, nil
}

func (s *offeringService) List(ctx context.Context, caller *domain.Caller, f Filter) (*domain.PageResult[domain.Service], error) {
	return s.repo.List(ctx, f.Query(caller.Privileged()), f.Page)
}

func (s *offeringService) Get(ctx context.Context, id string) (*domain.Service, error) {
	return s.repo.Get(ctx, id)
}

// GetBySlug finds an offering by slug; anonymous callers only see active ones.
func (s *offeringService) GetBySlug(ctx context.Context, caller *domain.Caller, slug string) (*domain.Service, error) {
	q := pkg.Query{}.Eq("slug", pkg.NormalizeSlug(slug))
	if !caller.Privileged() {
		q = q.Eq("is_active", true)
	}
	return s.repo.FindOne(ctx, q)
}

func (s *offeringService) Update(ctx context.Context, id string, req *UpdateServiceRequest) (*domain.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Slug != nil {
		if slug := pkg.NormalizeSlug(*req.Slug); slug != svc.Slug {
			if err := s.ensureSlugFree(ctx, slug, svc.ID); err != nil {
				return nil, err
			}
		}
	}

	req.apply(svc)
	if err := s.repo.Save(ctx, svc); err != nil {
		return nil, conflictOnDuplicate(err, svc.Slug)
	}
	return svc, nil
}

func (s *offeringService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *offeringService) ensureSlugFree(ctx context.Context, slug, excludeID string) error {
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
	return domain.NewConflict("service with slug '" + slug + "' already exists")
}

func conflictOnDuplicate(err error, slug string) error {
	if domain.IsAlreadyExists(err) {
		return slugConflict(slug)
	}
	return err
}
