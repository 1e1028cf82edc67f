package lead

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/pkg"
)

// LeadHandler handles REST API requests for leads.
type LeadHandler struct {
	svc Service
}

// NewLeadHandler creates a new LeadHandler with the given service.
func NewLeadHandler(svc Service) *LeadHandler {
	return &LeadHandler{svc: svc}
}

// Create handles POST /api/v1/leads (public contact form).
func (h *LeadHandler) Create(c *gin.Context) {
	var req CreateLeadRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	l, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "thank you, we will be in touch shortly", l)
}

// List handles GET /api/v1/leads.
func (h *LeadHandler) List(c *gin.Context) {
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

// Stats handles GET /api/v1/leads/stats.
func (h *LeadHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, st)
}

// Get handles GET /api/v1/leads/:id.
func (h *LeadHandler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	l, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, l)
}

// Update handles PATCH /api/v1/leads/:id.
func (h *LeadHandler) Update(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateLeadRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	l, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, l)
}

// Delete handles DELETE /api/v1/leads/:id.
func (h *LeadHandler) Delete(c *gin.Context) {
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
