package team

import "github.com/gin-gonic/gin"

// TeamModule implements the app.Module interface for team members.
type TeamModule struct {
	handler *TeamHandler
}

// NewModule creates a new TeamModule with the given handler.
// Panics if h is nil.
func NewModule(h *TeamHandler) *TeamModule {
	if h == nil {
		panic("team.NewModule: handler must not be nil")
	}
	return &TeamModule{handler: h}
}

// RegisterRoutes registers team API routes.
func (m *TeamModule) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/team", m.handler.List)

	admin.GET("/team/all", m.handler.List)
	admin.GET("/team/stats", m.handler.Stats)
	admin.PATCH("/team/reorder", m.handler.Reorder)
	admin.GET("/team/:id", m.handler.Get)
	admin.POST("/team", m.handler.Create)
	admin.PATCH("/team/:id", m.handler.Update)
	admin.DELETE("/team/:id", m.handler.Delete)
}
