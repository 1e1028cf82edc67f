package project

import (
	"context"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
)

// Service defines the project operations.
type Service interface {
	Create(ctx context.Context, req *CreateProjectRequest) (*domain.Project, error)
	List(ctx context.Context, f Filter) (*domain.PageResult[domain.Project], error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Project, error)
	Update(ctx context.Context, id string, req *UpdateProjectRequest) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// projectService implements Service.
type projectService struct {
	repo *store.Repository[domain.Project]
}

// NewService creates a new project Service.
func NewService(repo *store.Repository[domain.Project]) Service {
	return &projectService{repo: repo}
}

// Create checks the slug is free, then persists the project.
func (s *projectService) Create(ctx context.Context, req *CreateProjectRequest) (*domain.Project, error) {
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

	p := &domain.Project{
		Title:        req.Title,
		Slug:         slug,
		Description:  req.Description,
		Content:      req.Content,
		Category:     req.Category,
		ClientName:   req.ClientName,
		CoverImage:   req.CoverImage,
		Gallery:      pkg.CleanList(req.Gallery),
		Technologies: pkg.CleanList(req.Technologies),
		LiveURL:      req.LiveURL,
		RepoURL:      req.RepoURL,
		IsFeatured:   req.IsFeatured,
		CompletedAt:  req.CompletedAt,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, conflictOnDuplicate(err, slug)
	}
	return p, nil
}

// List returns a page of projects matching f.
func (s *projectService) List(ctx context.Context, f Filter) (*domain.PageResult[domain.Project], error) {
	return s.repo.List(ctx, f.Query(), f.Page)
}

// Get retrieves a project by ID.
func (s *projectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.Get(ctx, id)
}

// GetBySlug retrieves a project by its slug.
func (s *projectService) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	return s.repo.FindOne(ctx, pkg.Query{}.Eq("slug", pkg.NormalizeSlug(slug)))
}

// Update merges the provided fields into the stored project.
func (s *projectService) Update(ctx context.Context, id string, req *UpdateProjectRequest) (*domain.Project, error) {
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

// Delete removes a project by ID.
func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *projectService) ensureSlugFree(ctx context.Context, slug, excludeID string) error {
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
	return domain.NewConflict("project with slug '" + slug + "' already exists")
}

// conflictOnDuplicate rewrites a unique-index violation from a racing insert
// into the same conflict the pre-check reports.
func conflictOnDuplicate(err error, slug string) error {
	if domain.IsAlreadyExists(err) {
		return slugConflict(slug)
	}
	return err
}
