package newsletter

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/pkg"
)

// NewsletterHandler handles REST API requests for newsletter subscriptions.
type NewsletterHandler struct {
	svc Service
}

// NewNewsletterHandler creates a new NewsletterHandler with the given service.
func NewNewsletterHandler(svc Service) *NewsletterHandler {
	return &NewsletterHandler{svc: svc}
}

// Subscribe handles POST /api/v1/newsletter/subscribe.
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	sub, err := h.svc.Subscribe(c.Request.Context(), &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "subscribed", sub)
}

// Unsubscribe handles POST /api/v1/newsletter/unsubscribe.
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req UnsubscribeRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	if err := h.svc.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, nil)
}

// List handles GET /api/v1/newsletter.
func (h *NewsletterHandler) List(c *gin.Context) {
	f, err := ParseFilter(c.Request.URL.Query())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	page, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Page(c, page)
}

// Stats handles GET /api/v1/newsletter/stats.
func (h *NewsletterHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, st)
}

// Delete handles DELETE /api/v1/newsletter/:id.
func (h *NewsletterHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, nil)
}
