package newsletter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
)

const defaultSource = "website"

// Stats summarizes the mailing list.
type Stats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Inactive  int64 `json:"inactive"`
	ThisMonth int64 `json:"thisMonth"`
}

// Service defines the newsletter operations.
type Service interface {
	Subscribe(ctx context.Context, req *SubscribeRequest) (*domain.Subscription, error)
	Unsubscribe(ctx context.Context, email string) error
	List(ctx context.Context, f Filter) (*domain.PageResult[domain.Subscription], error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
}

// newsletterService implements Service.
type newsletterService struct {
	repo *store.Repository[domain.Subscription]
	now  func() time.Time
}

// NewService creates a new newsletter Service.
func NewService(repo *store.Repository[domain.Subscription]) Service {
	return &newsletterService{repo: repo, now: time.Now}
}

// Subscribe adds email to the list. An active subscription is a conflict; an
// inactive one is reactivated in place.
func (s *newsletterService) Subscribe(ctx context.Context, req *SubscribeRequest) (*domain.Subscription, error) {
	email := pkg.NormalizeEmail(req.Email)
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = defaultSource
	}

	existing, err := s.repo.FindOne(ctx, pkg.Query{}.Eq("email", email))
	switch {
	case err == nil && existing.IsActive:
		return nil, alreadySubscribed()
	case err == nil:
		existing.IsActive = true
		existing.Source = source
		existing.SubscribedAt = s.now()
		existing.UnsubscribedAt = nil
		if err := s.repo.Save(ctx, existing); err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "newsletter subscription reactivated", slog.String("subscription_id", existing.ID))
		return existing, nil
	case !domain.IsNotFound(err):
		return nil, err
	}

	sub := &domain.Subscription{
		Email:        email,
		IsActive:     true,
		Source:       source,
		SubscribedAt: s.now(),
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		if domain.IsAlreadyExists(err) {
			return nil, alreadySubscribed()
		}
		return nil, err
	}
	return sub, nil
}

// Unsubscribe marks the active subscription for email inactive.
func (s *newsletterService) Unsubscribe(ctx context.Context, email string) error {
	sub, err := s.repo.FindOne(ctx, pkg.Query{}.
		Eq("email", pkg.NormalizeEmail(email)).
		Eq("is_active", true))
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.NewAppError(domain.CodeNotFound, "no active subscription for this email", nil)
		}
		return err
	}

	now := s.now()
	sub.IsActive = false
	sub.UnsubscribedAt = &now
	return s.repo.Save(ctx, sub)
}

func (s *newsletterService) List(ctx context.Context, f Filter) (*domain.PageResult[domain.Subscription], error) {
	return s.repo.List(ctx, f.Query(), f.Page)
}

// Delete removes the record outright, unlike Unsubscribe.
func (s *newsletterService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *newsletterService) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var st Stats
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
		st.ThisMonth, err = s.repo.Count(gctx, pkg.Query{}.
			Eq("is_active", true).
			AtLeast("subscribed_at", monthStart))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	st.Inactive = st.Total - st.Active
	return &st, nil
}

func alreadySubscribed() error {
	return domain.NewConflict("email is already subscribed")
}
