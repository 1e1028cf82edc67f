package lead

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
)

// Notifier is told about every new lead. Calls run detached from the request
// and their errors never reach the client.
type Notifier interface {
	Name() string
	NotifyLead(ctx context.Context, lead *domain.Lead) error
}

// Stats summarizes the lead pipeline.
type Stats struct {
	Total          int64            `json:"total"`
	ThisMonth      int64            `json:"thisMonth"`
	ByStatus       map[string]int64 `json:"byStatus"`
	BySource       map[string]int64 `json:"bySource"`
	ConversionRate float64          `json:"conversionRate"`
}

// Service defines the lead operations.
type Service interface {
	Create(ctx context.Context, req *CreateLeadRequest) (*domain.Lead, error)
	List(ctx context.Context, f Filter) (*domain.PageResult[domain.Lead], error)
	Get(ctx context.Context, id string) (*domain.Lead, error)
	Update(ctx context.Context, id string, req *UpdateLeadRequest) (*domain.Lead, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
}

// leadService implements Service.
type leadService struct {
	repo      *store.Repository[domain.Lead]
	bg        *pkg.Background
	notifiers []Notifier
	now       func() time.Time
}

// NewService creates a new lead Service. Each notifier is invoked on bg for
// every created lead.
func NewService(repo *store.Repository[domain.Lead], bg *pkg.Background, notifiers ...Notifier) Service {
	return &leadService{repo: repo, bg: bg, notifiers: notifiers, now: time.Now}
}

// Create stores a new lead in status "new" and fans it out to the notifiers.
func (s *leadService) Create(ctx context.Context, req *CreateLeadRequest) (*domain.Lead, error) {
	source := req.Source
	if source == "" {
		source = domain.LeadSourceContactForm
	}
	l := &domain.Lead{
		FullName:    strings.TrimSpace(req.FullName),
		Email:       pkg.NormalizeEmail(req.Email),
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		Service:     req.Service,
		Budget:      req.Budget,
		Message:     req.Message,
		Source:      source,
		Status:      domain.LeadStatusNew,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "lead created", slog.String("lead_id", l.ID), slog.String("source", l.Source))
	snapshot := *l
	for _, n := range s.notifiers {
		s.bg.Go(ctx, n.Name(), func(ctx context.Context) error {
			return n.NotifyLead(ctx, &snapshot)
		})
	}
	return l, nil
}

// List returns a page of leads matching f.
func (s *leadService) List(ctx context.Context, f Filter) (*domain.PageResult[domain.Lead], error) {
	return s.repo.List(ctx, f.Query(), f.Page)
}

// Get retrieves a lead by ID.
func (s *leadService) Get(ctx context.Context, id string) (*domain.Lead, error) {
	return s.repo.Get(ctx, id)
}

// Update merges the provided fields into the stored lead.
func (s *leadService) Update(ctx context.Context, id string, req *UpdateLeadRequest) (*domain.Lead, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(l)
	if err := s.repo.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes a lead by ID.
func (s *leadService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Stats runs the independent aggregates concurrently.
func (s *leadService) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		st        Stats
		byStatus  map[string]int64
		bySource  map[string]int64
		converted int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		st.Total, err = s.repo.Count(gctx, pkg.Query{})
		return err
	})
	g.Go(func() error {
		var err error
		st.ThisMonth, err = s.repo.Count(gctx, pkg.Query{}.AtLeast("created_at", monthStart))
		return err
	})
	g.Go(func() error {
		var err error
		byStatus, err = s.repo.GroupCount(gctx, "status", pkg.Query{})
		return err
	})
	g.Go(func() error {
		var err error
		bySource, err = s.repo.GroupCount(gctx, "source", pkg.Query{})
		return err
	})
	g.Go(func() error {
		var err error
		converted, err = s.repo.Count(gctx, pkg.Query{}.Eq("status", domain.LeadStatusConverted))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	st.ByStatus = withZeros(byStatus, domain.LeadStatuses)
	st.BySource = withZeros(bySource, domain.LeadSources)
	if st.Total > 0 {
		st.ConversionRate = math.Round(float64(converted)/float64(st.Total)*10000) / 100
	}
	return &st, nil
}

// withZeros makes sure every known key is present in counts.
func withZeros(counts map[string]int64, keys []string) map[string]int64 {
	out := make(map[string]int64, len(keys))
	for _, k := range keys {
		out[k] = 0
	}
	for k, v := range counts {
		out[k] = v
	}
	return out
}
