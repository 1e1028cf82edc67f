package faq

import "github.com/gin-gonic/gin"

// FAQModule implements the app.Module interface for FAQs.
type FAQModule struct {
	handler *FAQHandler
}

// NewModule creates a new FAQModule with the given handler.
// Panics if h is nil.
func NewModule(h *FAQHandler) *FAQModule {
	if h == nil {
		panic("faq.NewModule: handler must not be nil")
	}
	return &FAQModule{handler: h}
}

// RegisterRoutes registers FAQ API routes.
func (m *FAQModule) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/faqs", m.handler.List)

	admin.GET("/faqs/all", m.handler.List)
	admin.PATCH("/faqs/reorder", m.handler.Reorder)
	admin.GET("/faqs/:id", m.handler.Get)
	admin.POST("/faqs", m.handler.Create)
	admin.PATCH("/faqs/:id", m.handler.Update)
	admin.DELETE("/faqs/:id", m.handler.Delete)
}
