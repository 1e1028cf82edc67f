package hosting

import (
	"context"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
)

// Service defines the hosting package operations.
type Service interface {
	Create(ctx context.Context, req *CreatePackageRequest) (*domain.HostingPackage, error)
	List(ctx context.Context, caller *domain.Caller, f Filter) (*domain.PageResult[domain.HostingPackage], error)
	Get(ctx context.Context, id string) (*domain.HostingPackage, error)
	GetBySlug(ctx context.Context, caller *domain.Caller, slug string) (*domain.HostingPackage, error)
	Update(ctx context.Context, id string, req *UpdatePackageRequest) (*domain.HostingPackage, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, req *pkg.ReorderRequest) error
}

// hostingService implements Service.
type hostingService struct {
	repo *store.Repository[domain.HostingPackage]
}

// NewService creates a new hosting package Service.
func NewService(repo *store.Repository[domain.HostingPackage]) Service {
	return &hostingService{repo: repo}
}

// Create derives the slug from the name when none is given, checks it is
// free, then persists the package.
func (s *hostingService) Create(ctx context.Context, req *CreatePackageRequest) (*domain.HostingPackage, error) {
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

	p := req.hostingPackage(slug)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, conflictOnDuplicate(err, slug)
	}
	return p, nil
}

func (s *hostingService) List(ctx context.Context, caller *domain.Caller, f Filter) (*domain.PageResult[domain.HostingPackage], error) {
	return s.repo.List(ctx, f.Query(caller.Privileged()), f.Page)
}

func (s *hostingService) Get(ctx context.Context, id string) (*domain.HostingPackage, error) {
	return s.repo.Get(ctx, id)
}

// GetBySlug finds a package by slug; anonymous callers only see active ones.
func (s *hostingService) GetBySlug(ctx context.Context, caller *domain.Caller, slug string) (*domain.HostingPackage, error) {
	q := pkg.Query{}.Eq("slug", pkg.NormalizeSlug(slug))
	if !caller.Privileged() {
		q = q.Eq("is_active", true)
	}
	return s.repo.FindOne(ctx, q)
}

func (s *hostingService) Update(ctx context.Context, id string, req *UpdatePackageRequest) (*domain.HostingPackage, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Slug != nil {
		if slug := pkg.NormalizeSlug(*req.Slug); slug != p.Slug {
			if err := s.ensureSlugFree(ctx, slug, p.ID); err != nil {
				return nil, err
			}
		}
	}

	req.apply(p)
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, conflictOnDuplicate(err, p.Slug)
	}
	return p, nil
}

func (s *hostingService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Reorder assigns the requested sortOrder values in one transaction.
func (s *hostingService) Reorder(ctx context.Context, req *pkg.ReorderRequest) error {
	return s.repo.Reorder(ctx, "sort_order", req.Positions())
}

func (s *hostingService) ensureSlugFree(ctx context.Context, slug, excludeID string) error {
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
	return domain.NewConflict("hosting package with slug '" + slug + "' already exists")
}

func conflictOnDuplicate(err error, slug string) error {
	if domain.IsAlreadyExists(err) {
		return slugConflict(slug)
	}
	return err
}
