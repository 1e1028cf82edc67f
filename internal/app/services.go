package app

import (
	"gorm.io/gorm"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/module/auth"
	"github.com/simp-lee/agencyhub/internal/module/blog"
	"github.com/simp-lee/agencyhub/internal/module/faq"
	"github.com/simp-lee/agencyhub/internal/module/hosting"
	"github.com/simp-lee/agencyhub/internal/module/lead"
	"github.com/simp-lee/agencyhub/internal/module/newsletter"
	"github.com/simp-lee/agencyhub/internal/module/offering"
	"github.com/simp-lee/agencyhub/internal/module/project"
	"github.com/simp-lee/agencyhub/internal/module/team"
	"github.com/simp-lee/agencyhub/internal/module/technology"
	"github.com/simp-lee/agencyhub/internal/module/testimonial"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
)

// Services is the resource service graph shared by the HTTP server and the
// one-shot CLI commands.
type Services struct {
	Auth         auth.Service
	Projects     project.Service
	Blog         blog.Service
	Leads        lead.Service
	Team         team.Service
	Testimonials testimonial.Service
	Hosting      hosting.Service
	Selector     *hosting.Selector
	FAQs         faq.Service
	Offerings    offering.Service
	Technologies technology.Service
	Newsletter   newsletter.Service
}

// NewServices wires repositories into services. tokens may be nil for
// callers that never log anyone in.
func NewServices(db *gorm.DB, bg *pkg.Background, tokens auth.TokenIssuer, notifiers ...lead.Notifier) *Services {
	leads := lead.NewService(store.New[domain.Lead](db, "lead"), bg, notifiers...)
	packages := hosting.NewService(store.New[domain.HostingPackage](db, "hosting package"))

	return &Services{
		Auth:         auth.NewService(tokens, store.New[domain.User](db, "user")),
		Projects:     project.NewService(store.New[domain.Project](db, "project")),
		Blog:         blog.NewService(store.New[domain.BlogPost](db, "blog post"), bg),
		Leads:        leads,
		Team:         team.NewService(store.New[domain.TeamMember](db, "team member")),
		Testimonials: testimonial.NewService(store.New[domain.Testimonial](db, "testimonial")),
		Hosting:      packages,
		Selector:     hosting.NewSelector(packages, leads),
		FAQs:         faq.NewService(store.New[domain.FAQ](db, "faq")),
		Offerings:    offering.NewService(store.New[domain.Service](db, "service")),
		Technologies: technology.NewService(store.New[domain.Technology](db, "technology")),
		Newsletter:   newsletter.NewService(store.New[domain.Subscription](db, "subscription")),
	}
}
