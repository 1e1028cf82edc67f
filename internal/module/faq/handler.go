package faq

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// FAQHandler handles REST API requests for FAQs.
type FAQHandler struct {
	svc Service
}

// NewFAQHandler creates a new FAQHandler with the given service.
func NewFAQHandler(svc Service) *FAQHandler {
	return &FAQHandler{svc: svc}
}

// Create handles POST /api/v1/faqs.
func (h *FAQHandler) Create(c *gin.Context) {
	var req CreateFAQRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	f, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "faq created", f)
}

// List handles GET /api/v1/faqs and GET /api/v1/faqs/all.
func (h *FAQHandler) List(c *gin.Context) {
	f, err := ParseFilter(c.Request.URL.Query())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	page, err := h.svc.List(ctx, domain.CallerFrom(ctx), f)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Page(c, page)
}

// Get handles GET /api/v1/faqs/:id.
func (h *FAQHandler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	f, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, f)
}

// Update handles PATCH /api/v1/faqs/:id.
func (h *FAQHandler) Update(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateFAQRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	f, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, f)
}

// Delete handles DELETE /api/v1/faqs/:id.
func (h *FAQHandler) Delete(c *gin.Context) {
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

// Reorder handles PATCH /api/v1/faqs/reorder.
func (h *FAQHandler) Reorder(c *gin.Context) {
	var req pkg.ReorderRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	if err := h.svc.Reorder(c.Request.Context(), &req); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, nil)
}
