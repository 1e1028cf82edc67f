package testimonial

import (
	"context"
	"math"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
)

// Stats summarizes testimonials. ByRating is keyed "1".."5".
type Stats struct {
	Total         int64            `json:"total"`
	Featured      int64            `json:"featured"`
	AverageRating float64          `json:"averageRating"`
	ByRating      map[string]int64 `json:"byRating"`
}

// Service defines the testimonial operations.
type Service interface {
	Create(ctx context.Context, req *CreateTestimonialRequest) (*domain.Testimonial, error)
	List(ctx context.Context, f Filter) (*domain.PageResult[domain.Testimonial], error)
	Get(ctx context.Context, id string) (*domain.Testimonial, error)
	Update(ctx context.Context, id string, req *UpdateTestimonialRequest) (*domain.Testimonial, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
}

// testimonialService implements Service.
type testimonialService struct {
	repo *store.Repository[domain.Testimonial]
}

// NewService creates a new testimonial Service.
func NewService(repo *store.Repository[domain.Testimonial]) Service {
	return &testimonialService{repo: repo}
}

func (s *testimonialService) Create(ctx context.Context, req *CreateTestimonialRequest) (*domain.Testimonial, error) {
	t := req.testimonial()
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *testimonialService) List(ctx context.Context, f Filter) (*domain.PageResult[domain.Testimonial], error) {
	return s.repo.List(ctx, f.Query(), f.Page)
}

func (s *testimonialService) Get(ctx context.Context, id string) (*domain.Testimonial, error) {
	return s.repo.Get(ctx, id)
}

func (s *testimonialService) Update(ctx context.Context, id string, req *UpdateTestimonialRequest) (*domain.Testimonial, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(t)
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *testimonialService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Stats returns counts and the average rating rounded to one decimal.
func (s *testimonialService) Stats(ctx context.Context) (*Stats, error) {
	var (
		st       Stats
		avg      float64
		byRating map[string]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		st.Total, err = s.repo.Count(gctx, pkg.Query{})
		return err
	})
	g.Go(func() error {
		var err error
		st.Featured, err = s.repo.Count(gctx, pkg.Query{}.Eq("is_featured", true))
		return err
	})
	g.Go(func() error {
		var err error
		avg, err = s.repo.Average(gctx, "rating", pkg.Query{})
		return err
	})
	g.Go(func() error {
		var err error
		byRating, err = s.repo.GroupCount(gctx, "rating", pkg.Query{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	st.AverageRating = math.Round(avg*10) / 10
	st.ByRating = make(map[string]int64, 5)
	for r := 1; r <= 5; r++ {
		key := strconv.Itoa(r)
		st.ByRating[key] = byRating[key]
	}
	return &st, nil
}
