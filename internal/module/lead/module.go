package lead

import "github.com/gin-gonic/gin"

// LeadModule implements the app.Module interface for the CRM.
type LeadModule struct {
	handler  *LeadHandler
	throttle []gin.HandlerFunc
}

// NewModule creates a new LeadModule. throttle, when non-nil, guards the
// public submission endpoint. Panics if h is nil.
func NewModule(h *LeadHandler, throttle gin.HandlerFunc) *LeadModule {
	if h == nil {
		panic("lead.NewModule: handler must not be nil")
	}
	m := &LeadModule{handler: h}
	if throttle != nil {
		m.throttle = []gin.HandlerFunc{throttle}
	}
	return m
}

// RegisterRoutes registers lead API routes.
func (m *LeadModule) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.POST("/leads", append(m.throttle, m.handler.Create)...)

	admin.GET("/leads", m.handler.List)
	admin.GET("/leads/stats", m.handler.Stats)
	admin.GET("/leads/:id", m.handler.Get)
	admin.PATCH("/leads/:id", m.handler.Update)
	admin.DELETE("/leads/:id", m.handler.Delete)
}
