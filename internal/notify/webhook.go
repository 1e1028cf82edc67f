package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/simp-lee/agencyhub/internal/domain"
)

// DeliveryHeader carries a unique id per webhook delivery so receivers can
// drop duplicates.
const DeliveryHeader = "X-Delivery-ID"

// HTTPDoer executes HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Webhook posts every new lead as JSON to a configured URL.
type Webhook struct {
	url    string
	client HTTPDoer
	logger *slog.Logger
}

// NewWebhook creates a Webhook. A nil client gets an http.Client bounded by
// timeout. An empty url is allowed: deliveries are skipped with a warning.
func NewWebhook(url string, client HTTPDoer, timeout time.Duration, logger *slog.Logger) *Webhook {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Webhook{url: url, client: client, logger: logger}
}

// Name implements lead.Notifier.
func (w *Webhook) Name() string { return "lead webhook" }

// NotifyLead implements lead.Notifier. It makes a single attempt; any
// non-2xx answer is reported as an error.
func (w *Webhook) NotifyLead(ctx context.Context, lead *domain.Lead) error {
	if w.url == "" {
		w.logger.WarnContext(ctx, "lead webhook url not configured, skipping delivery",
			slog.String("lead_id", lead.ID))
		return nil
	}

	body, err := json.Marshal(leadPayload(lead))
	if err != nil {
		return fmt.Errorf("encode lead payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	deliveryID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(DeliveryHeader, deliveryID)

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post lead webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("lead webhook answered %d", resp.StatusCode)
	}

	w.logger.InfoContext(ctx, "lead webhook delivered",
		slog.String("lead_id", lead.ID),
		slog.String("delivery_id", deliveryID),
		slog.Int("status", resp.StatusCode),
	)
	return nil
}
