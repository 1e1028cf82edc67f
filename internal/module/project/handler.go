package project

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/pkg"
)

// ProjectHandler handles REST API requests for the project resource.
type ProjectHandler struct {
	svc Service
}

// NewProjectHandler creates a new ProjectHandler with the given service.
func NewProjectHandler(svc Service) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// Create handles POST /api/v1/projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	p, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "project created", p)
}

// List handles GET /api/v1/projects.
func (h *ProjectHandler) List(c *gin.Context) {
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

// Get handles GET /api/v1/projects/:id.
func (h *ProjectHandler) Get(c *gin.Context) {
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

// GetBySlug handles GET /api/v1/projects/slug/:slug.
func (h *ProjectHandler) GetBySlug(c *gin.Context) {
	p, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, p)
}

// Update handles PATCH /api/v1/projects/:id.
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateProjectRequest
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

// Delete handles DELETE /api/v1/projects/:id.
func (h *ProjectHandler) Delete(c *gin.Context) {
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
