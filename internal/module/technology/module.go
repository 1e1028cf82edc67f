package technology

import "github.com/gin-gonic/gin"

// TechnologyModule implements the app.Module interface for the tech stack.
type TechnologyModule struct {
	handler *TechnologyHandler
}

// NewModule creates a new TechnologyModule with the given handler.
// Panics if h is nil.
func NewModule(h *TechnologyHandler) *TechnologyModule {
	if h == nil {
		panic("technology.NewModule: handler must not be nil")
	}
	return &TechnologyModule{handler: h}
}

// RegisterRoutes registers technology API routes.
func (m *TechnologyModule) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/technologies", m.handler.List)
	public.GET("/technologies/:id", m.handler.Get)

	admin.POST("/technologies", m.handler.Create)
	admin.PATCH("/technologies/:id", m.handler.Update)
	admin.DELETE("/technologies/:id", m.handler.Delete)
}
