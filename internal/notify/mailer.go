package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/osteele/liquid"

	"github.com/simp-lee/agencyhub/internal/domain"
)

const (
	defaultSubject = `[{{ site }}] New lead from {{ lead.fullName }}`
	defaultBody    = `A new lead arrived via {{ lead.source }}.

Name:    {{ lead.fullName }}
Email:   {{ lead.email }}
{% if lead.phone != "" %}Phone:   {{ lead.phone }}
{% endif %}{% if lead.companyName != "" %}Company: {{ lead.companyName }}
{% endif %}{% if lead.service != "" %}Service: {{ lead.service }}
{% endif %}{% if lead.budget != "" %}Budget:  {{ lead.budget }}
{% endif %}
{{ lead.message }}
`
)

// EmailSender is the part of the SES v2 client the mailer uses.
type EmailSender interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// MailerConfig configures a Mailer. Subject and Body are Liquid templates
// bound to "site" and "lead"; empty means the built-in text.
type MailerConfig struct {
	From     string
	To       []string
	SiteName string
	Subject  string
	Body     string
}

// Mailer e-mails the team about every new lead through SES.
type Mailer struct {
	client  EmailSender
	from    string
	to      []string
	site    string
	subject *liquid.Template
	body    *liquid.Template
	logger  *slog.Logger
}

// NewMailer parses the templates up front so a broken template fails at
// startup instead of on the first lead.
func NewMailer(client EmailSender, cfg MailerConfig, logger *slog.Logger) (*Mailer, error) {
	if client == nil {
		return nil, errors.New("notify: SES client is required")
	}
	if cfg.From == "" || len(cfg.To) == 0 {
		return nil, errors.New("notify: from and to addresses are required")
	}
	if cfg.Subject == "" {
		cfg.Subject = defaultSubject
	}
	if cfg.Body == "" {
		cfg.Body = defaultBody
	}
	if logger == nil {
		logger = slog.Default()
	}

	engine := liquid.NewEngine()
	subject, perr := engine.ParseString(cfg.Subject)
	if perr != nil {
		return nil, fmt.Errorf("notify: parse subject template: %w", perr)
	}
	body, perr := engine.ParseString(cfg.Body)
	if perr != nil {
		return nil, fmt.Errorf("notify: parse body template: %w", perr)
	}

	return &Mailer{
		client:  client,
		from:    cfg.From,
		to:      cfg.To,
		site:    cfg.SiteName,
		subject: subject,
		body:    body,
		logger:  logger,
	}, nil
}

// Name implements lead.Notifier.
func (m *Mailer) Name() string { return "lead email" }

// NotifyLead implements lead.Notifier.
func (m *Mailer) NotifyLead(ctx context.Context, lead *domain.Lead) error {
	bindings := liquid.Bindings{"site": m.site, "lead": leadPayload(lead)}

	subject, err := render(m.subject, bindings)
	if err != nil {
		return fmt.Errorf("render subject: %w", err)
	}
	body, err := render(m.body, bindings)
	if err != nil {
		return fmt.Errorf("render body: %w", err)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination:      &types.Destination{ToAddresses: m.to},
		ReplyToAddresses: []string{lead.Email},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(strings.TrimSpace(subject)), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
				},
			},
		},
		EmailTags: []types.MessageTag{
			{Name: aws.String("kind"), Value: aws.String("lead")},
		},
	}

	out, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("send lead email: %w", err)
	}
	m.logger.InfoContext(ctx, "lead email sent",
		slog.String("lead_id", lead.ID),
		slog.String("message_id", aws.ToString(out.MessageId)),
	)
	return nil
}

func render(t *liquid.Template, b liquid.Bindings) (string, error) {
	out, err := t.RenderString(b)
	if err != nil {
		return "", err
	}
	return out, nil
}
