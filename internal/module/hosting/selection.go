package hosting

import (
	"context"
	"fmt"
	"strings"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/module/lead"
)

// Selector turns a visitor's package choice into a CRM lead. It sits above
// both services so neither depends on the other.
type Selector struct {
	packages Service
	leads    lead.Service
}

// NewSelector creates a Selector. Panics if either service is nil.
func NewSelector(packages Service, leads lead.Service) *Selector {
	if packages == nil || leads == nil {
		panic("hosting.NewSelector: services must not be nil")
	}
	return &Selector{packages: packages, leads: leads}
}

// Select records interest in the package with the given id. The package must
// exist and be active; inactive packages report NotFound like missing ones.
func (s *Selector) Select(ctx context.Context, id string, req *SelectPackageRequest) (*domain.Lead, error) {
	p, err := s.packages.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, domain.NewNotFound("hosting package")
	}

	cycle := req.BillingCycle
	if cycle == "" {
		cycle = p.BillingCycle
	}
	msg := fmt.Sprintf("Selected hosting package: %s (%s billing)", p.Name, cycle)
	if note := strings.TrimSpace(req.Message); note != "" {
		msg += "\n\n" + note
	}

	return s.leads.Create(ctx, &lead.CreateLeadRequest{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		Service:     "hosting",
		Budget:      fmt.Sprintf("%.2f %s / %s", p.Price, p.Currency, cycle),
		Message:     msg,
		Source:      domain.LeadSourcePackageSelection,
	})
}
