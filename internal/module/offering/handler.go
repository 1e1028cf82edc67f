package offering

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// OfferingHandler handles REST API requests for /services.
type OfferingHandler struct {
	svc Service
}

// NewOfferingHandler creates a new OfferingHandler with the given service.
func NewOfferingHandler(svc Service) *OfferingHandler {
	return &OfferingHandler{svc: svc}
}

// Create handles POST /api/v1/services.
func (h *OfferingHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	s, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "service created", s)
}

// List handles GET /api/v1/services and GET /api/v1/services/all.
func (h *OfferingHandler) List(c *gin.Context) {
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

// Get handles GET /api/v1/services/:id.
func (h *OfferingHandler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	s, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, s)
}

// GetBySlug handles GET /api/v1/services/slug/:slug.
func (h *OfferingHandler) GetBySlug(c *gin.Context) {
	ctx := c.Request.Context()
	s, err := h.svc.GetBySlug(ctx, domain.CallerFrom(ctx), c.Param("slug"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, s)
}

// Update handles PATCH /api/v1/services/:id.
func (h *OfferingHandler) Update(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateServiceRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	s, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, s)
}

// Delete handles DELETE /api/v1/services/:id.
func (h *OfferingHandler) Delete(c *gin.Context) {
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
