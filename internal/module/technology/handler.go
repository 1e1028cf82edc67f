package technology

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/pkg"
)

// TechnologyHandler handles REST API requests for technologies.
type TechnologyHandler struct {
	svc Service
}

// NewTechnologyHandler creates a new TechnologyHandler with the given service.
func NewTechnologyHandler(svc Service) *TechnologyHandler {
	return &TechnologyHandler{svc: svc}
}

// Create handles POST /api/v1/technologies.
func (h *TechnologyHandler) Create(c *gin.Context) {
	var req CreateTechnologyRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	t, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "technology created", t)
}

// List handles GET /api/v1/technologies.
func (h *TechnologyHandler) List(c *gin.Context) {
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

// Get handles GET /api/v1/technologies/:id.
func (h *TechnologyHandler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, t)
}

// Update handles PATCH /api/v1/technologies/:id.
func (h *TechnologyHandler) Update(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateTechnologyRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	t, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, t)
}

// Delete handles DELETE /api/v1/technologies/:id.
func (h *TechnologyHandler) Delete(c *gin.Context) {
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
