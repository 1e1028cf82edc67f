package newsletter

import "github.com/gin-gonic/gin"

// NewsletterModule implements the app.Module interface for the mailing list.
type NewsletterModule struct {
	handler  *NewsletterHandler
	throttle []gin.HandlerFunc
}

// NewModule creates a new NewsletterModule. throttle, when non-nil, guards
// the public subscribe and unsubscribe endpoints. Panics if h is nil.
func NewModule(h *NewsletterHandler, throttle gin.HandlerFunc) *NewsletterModule {
	if h == nil {
		panic("newsletter.NewModule: handler must not be nil")
	}
	m := &NewsletterModule{handler: h}
	if throttle != nil {
		m.throttle = []gin.HandlerFunc{throttle}
	}
	return m
}

// RegisterRoutes registers newsletter API routes.
func (m *NewsletterModule) RegisterRoutes(public, admin *gin.RouterGroup) {
	guarded := public.Group("/newsletter", m.throttle...)
	guarded.POST("/subscribe", m.handler.Subscribe)
	guarded.POST("/unsubscribe", m.handler.Unsubscribe)

	admin.GET("/newsletter", m.handler.List)
	admin.GET("/newsletter/stats", m.handler.Stats)
	admin.DELETE("/newsletter/:id", m.handler.Delete)
}
