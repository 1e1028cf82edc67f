package hosting

import "github.com/gin-gonic/gin"

// HostingModule implements the app.Module interface for hosting packages.
type HostingModule struct {
	handler  *HostingHandler
	throttle []gin.HandlerFunc
}

// NewModule creates a new HostingModule. throttle, when non-nil, guards the
// public package selection endpoint. Panics if h is nil.
func NewModule(h *HostingHandler, throttle gin.HandlerFunc) *HostingModule {
	if h == nil {
		panic("hosting.NewModule: handler must not be nil")
	}
	m := &HostingModule{handler: h}
	if throttle != nil {
		m.throttle = []gin.HandlerFunc{throttle}
	}
	return m
}

// RegisterRoutes registers hosting package API routes.
func (m *HostingModule) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/hosting-packages", m.handler.List)
	public.GET("/hosting-packages/slug/:slug", m.handler.GetBySlug)
	public.POST("/hosting-packages/:id/select", append(m.throttle, m.handler.Select)...)

	admin.GET("/hosting-packages/all", m.handler.List)
	admin.PATCH("/hosting-packages/reorder", m.handler.Reorder)
	admin.GET("/hosting-packages/:id", m.handler.Get)
	admin.POST("/hosting-packages", m.handler.Create)
	admin.PATCH("/hosting-packages/:id", m.handler.Update)
	admin.DELETE("/hosting-packages/:id", m.handler.Delete)
}
