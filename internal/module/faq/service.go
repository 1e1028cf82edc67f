package faq

import (
	"context"
	"strings"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
)

// Service defines the FAQ operations.
type Service interface {
	Create(ctx context.Context, req *CreateFAQRequest) (*domain.FAQ, error)
	List(ctx context.Context, caller *domain.Caller, f Filter) (*domain.PageResult[domain.FAQ], error)
	Get(ctx context.Context, id string) (*domain.FAQ, error)
	Update(ctx context.Context, id string, req *UpdateFAQRequest) (*domain.FAQ, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, req *pkg.ReorderRequest) error
}

// faqService implements Service.
type faqService struct {
	repo *store.Repository[domain.FAQ]
}

// NewService creates a new FAQ Service.
func NewService(repo *store.Repository[domain.FAQ]) Service {
	return &faqService{repo: repo}
}

func (s *faqService) Create(ctx context.Context, req *CreateFAQRequest) (*domain.FAQ, error) {
	f := &domain.FAQ{
		Question:  strings.TrimSpace(req.Question),
		Answer:    strings.TrimSpace(req.Answer),
		Category:  strings.TrimSpace(req.Category),
		SortOrder: req.Order,
		IsActive:  true,
	}
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// List returns a page of FAQs; inactive ones only for privileged callers.
func (s *faqService) List(ctx context.Context, caller *domain.Caller, f Filter) (*domain.PageResult[domain.FAQ], error) {
	return s.repo.List(ctx, f.Query(caller.Privileged()), f.Page)
}

func (s *faqService) Get(ctx context.Context, id string) (*domain.FAQ, error) {
	return s.repo.Get(ctx, id)
}

func (s *faqService) Update(ctx context.Context, id string, req *UpdateFAQRequest) (*domain.FAQ, error) {
	f, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(f)
	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *faqService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Reorder gives each listed FAQ its index as order. Every id must exist or
// nothing changes.
func (s *faqService) Reorder(ctx context.Context, req *pkg.ReorderRequest) error {
	return s.repo.Reorder(ctx, "sort_order", req.Positions())
}
