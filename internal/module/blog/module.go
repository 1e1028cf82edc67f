package blog

import "github.com/gin-gonic/gin"

// BlogModule implements the app.Module interface for the blog.
type BlogModule struct {
	handler *BlogHandler
}

// NewModule creates a new BlogModule with the given handler.
// Panics if h is nil.
func NewModule(h *BlogHandler) *BlogModule {
	if h == nil {
		panic("blog.NewModule: handler must not be nil")
	}
	return &BlogModule{handler: h}
}

// UncachedRoutes keeps the slug read out of the response cache, since every
// public read counts a view.
func (m *BlogModule) UncachedRoutes() []string {
	return []string{"/blog/slug/:slug"}
}

// RegisterRoutes registers blog API routes.
func (m *BlogModule) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/blog", m.handler.List)
	public.GET("/blog/feed.xml", m.handler.Feed)
	public.GET("/blog/slug/:slug", m.handler.GetBySlug)

	admin.GET("/blog/all", m.handler.List)
	admin.GET("/blog/:id", m.handler.Get)
	admin.POST("/blog", m.handler.Create)
	admin.PATCH("/blog/:id", m.handler.Update)
	admin.DELETE("/blog/:id", m.handler.Delete)
}
