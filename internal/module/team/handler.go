package team

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// TeamHandler handles REST API requests for team members.
type TeamHandler struct {
	svc Service
}

// NewTeamHandler creates a new TeamHandler with the given service.
func NewTeamHandler(svc Service) *TeamHandler {
	return &TeamHandler{svc: svc}
}

// Create handles POST /api/v1/team.
func (h *TeamHandler) Create(c *gin.Context) {
	var req CreateMemberRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	m, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "team member created", m)
}

// List handles GET /api/v1/team and GET /api/v1/team/all.
func (h *TeamHandler) List(c *gin.Context) {
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

// Stats handles GET /api/v1/team/stats.
func (h *TeamHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, st)
}

// Reorder handles PATCH /api/v1/team/reorder.
func (h *TeamHandler) Reorder(c *gin.Context) {
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

// Get handles GET /api/v1/team/:id.
func (h *TeamHandler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	m, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, m)
}

// Update handles PATCH /api/v1/team/:id.
func (h *TeamHandler) Update(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateMemberRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	m, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, m)
}

// Delete handles DELETE /api/v1/team/:id.
func (h *TeamHandler) Delete(c *gin.Context) {
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
