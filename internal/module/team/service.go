package team

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
)

// Stats summarizes the team.
type Stats struct {
	Total        int64            `json:"total"`
	Active       int64            `json:"active"`
	Inactive     int64            `json:"inactive"`
	ByDepartment map[string]int64 `json:"byDepartment"`
}

// Service defines the team member operations.
type Service interface {
	Create(ctx context.Context, req *CreateMemberRequest) (*domain.TeamMember, error)
	List(ctx context.Context, caller *domain.Caller, f Filter) (*domain.PageResult[domain.TeamMember], error)
	Get(ctx context.Context, id string) (*domain.TeamMember, error)
	Update(ctx context.Context, id string, req *UpdateMemberRequest) (*domain.TeamMember, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, req *pkg.ReorderRequest) error
	Stats(ctx context.Context) (*Stats, error)
}

// teamService implements Service.
type teamService struct {
	repo *store.Repository[domain.TeamMember]
}

// NewService creates a new team Service.
func NewService(repo *store.Repository[domain.TeamMember]) Service {
	return &teamService{repo: repo}
}

func (s *teamService) Create(ctx context.Context, req *CreateMemberRequest) (*domain.TeamMember, error) {
	m := req.member()
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns a page of members; inactive ones only for privileged callers.
func (s *teamService) List(ctx context.Context, caller *domain.Caller, f Filter) (*domain.PageResult[domain.TeamMember], error) {
	return s.repo.List(ctx, f.Query(caller.Privileged()), f.Page)
}

func (s *teamService) Get(ctx context.Context, id string) (*domain.TeamMember, error) {
	return s.repo.Get(ctx, id)
}

func (s *teamService) Update(ctx context.Context, id string, req *UpdateMemberRequest) (*domain.TeamMember, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(m)
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *teamService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Reorder assigns the requested positions in one transaction.
func (s *teamService) Reorder(ctx context.Context, req *pkg.ReorderRequest) error {
	return s.repo.Reorder(ctx, "sort_order", req.Positions())
}

func (s *teamService) Stats(ctx context.Context) (*Stats, error) {
	var (
		st     Stats
		byDept map[string]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		st.Total, err = s.repo.Count(gctx, pkg.Query{})
		return err
	})
	g.Go(func() error {
		var err error
		st.Active, err = s.repo.Count(gctx, pkg.Query{}.Eq("is_active", true))
		return err
	})
	g.Go(func() error {
		var err error
		byDept, err = s.repo.GroupCount(gctx, "department", pkg.Query{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	st.Inactive = st.Total - st.Active
	st.ByDepartment = make(map[string]int64, len(domain.Departments))
	for _, d := range domain.Departments {
		st.ByDepartment[d] = byDept[d]
	}
	return &st, nil
}
