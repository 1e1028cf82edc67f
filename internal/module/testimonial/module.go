package testimonial

import "github.com/gin-gonic/gin"

// TestimonialModule implements the app.Module interface for testimonials.
type TestimonialModule struct {
	handler *TestimonialHandler
}

// NewModule creates a new TestimonialModule with the given handler.
// Panics if h is nil.
func NewModule(h *TestimonialHandler) *TestimonialModule {
	if h == nil {
		panic("testimonial.NewModule: handler must not be nil")
	}
	return &TestimonialModule{handler: h}
}

// RegisterRoutes registers testimonial API routes.
func (m *TestimonialModule) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/testimonials", m.handler.List)
	public.GET("/testimonials/:id", m.handler.Get)

	admin.GET("/testimonials/stats", m.handler.Stats)
	admin.POST("/testimonials", m.handler.Create)
	admin.PATCH("/testimonials/:id", m.handler.Update)
	admin.DELETE("/testimonials/:id", m.handler.Delete)
}
