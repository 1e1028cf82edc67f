// Package notify delivers new-lead notifications to outside systems. Each
// notifier satisfies lead.Notifier and is run detached from the request.
package notify

import "github.com/simp-lee/agencyhub/internal/domain"

// leadPayload flattens a lead into the field set shared by the webhook body
// and the e-mail template bindings. Internal notes are never included.
func leadPayload(l *domain.Lead) map[string]any {
	return map[string]any{
		"id":          l.ID,
		"fullName":    l.FullName,
		"email":       l.Email,
		"phone":       l.Phone,
		"companyName": l.CompanyName,
		"service":     l.Service,
		"budget":      l.Budget,
		"message":     l.Message,
		"source":      l.Source,
		"status":      l.Status,
		"createdAt":   l.CreatedAt,
	}
}
