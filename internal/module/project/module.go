package project

import "github.com/gin-gonic/gin"

// ProjectModule implements the app.Module interface for the portfolio.
type ProjectModule struct {
	handler *ProjectHandler
}

// NewModule creates a new ProjectModule with the given handler.
// Panics if h is nil.
func NewModule(h *ProjectHandler) *ProjectModule {
	if h == nil {
		panic("project.NewModule: handler must not be nil")
	}
	return &ProjectModule{handler: h}
}

// RegisterRoutes registers project API routes.
func (m *ProjectModule) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/projects", m.handler.List)
	public.GET("/projects/slug/:slug", m.handler.GetBySlug)
	public.GET("/projects/:id", m.handler.Get)

	admin.POST("/projects", m.handler.Create)
	admin.PATCH("/projects/:id", m.handler.Update)
	admin.DELETE("/projects/:id", m.handler.Delete)
}
