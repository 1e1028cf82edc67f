package hosting

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// HostingHandler handles REST API requests for hosting packages.
type HostingHandler struct {
	svc      Service
	selector *Selector
}

// NewHostingHandler creates a new HostingHandler.
func NewHostingHandler(svc Service, selector *Selector) *HostingHandler {
	return &HostingHandler{svc: svc, selector: selector}
}

// Create handles POST /api/v1/hosting-packages.
func (h *HostingHandler) Create(c *gin.Context) {
	var req CreatePackageRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	p, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "hosting package created", p)
}

// List handles GET /api/v1/hosting-packages and GET /api/v1/hosting-packages/all.
func (h *HostingHandler) List(c *gin.Context) {
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

// Get handles GET /api/v1/hosting-packages/:id.
func (h *HostingHandler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, p)
}

// GetBySlug handles GET /api/v1/hosting-packages/slug/:slug.
func (h *HostingHandler) GetBySlug(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.svc.GetBySlug(ctx, domain.CallerFrom(ctx), c.Param("slug"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, p)
}

// Update handles PATCH /api/v1/hosting-packages/:id.
func (h *HostingHandler) Update(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdatePackageRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, p)
}

// Delete handles DELETE /api/v1/hosting-packages/:id.
func (h *HostingHandler) Delete(c *gin.Context) {
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

// Reorder handles PATCH /api/v1/hosting-packages/reorder.
func (h *HostingHandler) Reorder(c *gin.Context) {
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

// Select handles POST /api/v1/hosting-packages/:id/select.
func (h *HostingHandler) Select(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req SelectPackageRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	l, err := h.selector.Select(c.Request.Context(), id, &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "package selection received, we will contact you shortly", l)
}
