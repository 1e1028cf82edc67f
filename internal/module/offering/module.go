package offering

import "github.com/gin-gonic/gin"

// OfferingModule implements the app.Module interface for /services.
type OfferingModule struct {
	handler *OfferingHandler
}

// NewModule creates a new OfferingModule with the given handler.
// Panics if h is nil.
func NewModule(h *OfferingHandler) *OfferingModule {
	if h == nil {
		panic("offering.NewModule: handler must not be nil")
	}
	return &OfferingModule{handler: h}
}

// RegisterRoutes registers service offering API routes.
func (m *OfferingModule) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/services", m.handler.List)
	public.GET("/services/slug/:slug", m.handler.GetBySlug)

	admin.GET("/services/all", m.handler.List)
	admin.GET("/services/:id", m.handler.Get)
	admin.POST("/services", m.handler.Create)
	admin.PATCH("/services/:id", m.handler.Update)
	admin.DELETE("/services/:id", m.handler.Delete)
}
