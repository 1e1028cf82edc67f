package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// BlogHandler handles REST API requests for the blog resource.
type BlogHandler struct {
	svc  Service
	feed FeedConfig
}

// NewBlogHandler creates a new BlogHandler with the given service.
func NewBlogHandler(svc Service, feed FeedConfig) *BlogHandler {
	return &BlogHandler{svc: svc, feed: feed}
}

// Create handles POST /api/v1/blog.
func (h *BlogHandler) Create(c *gin.Context) {
	var req CreatePostRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	post, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "blog post created", post)
}

// List handles GET /api/v1/blog and GET /api/v1/blog/all. The caller in the
// request context decides whether drafts are included.
func (h *BlogHandler) List(c *gin.Context) {
	f, err := ParseFilter(c.Request.URL.Query())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	page, err := h.svc.List(ctx, domain.CallerFrom(ctx), f)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Page(c, page)
}

// Get handles GET /api/v1/blog/:id.
func (h *BlogHandler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	post, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, post)
}

// GetBySlug handles GET /api/v1/blog/slug/:slug.
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	ctx := c.Request.Context()
	post, err := h.svc.GetBySlug(ctx, domain.CallerFrom(ctx), c.Param("slug"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, post)
}

// Update handles PATCH /api/v1/blog/:id.
func (h *BlogHandler) Update(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdatePostRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	post, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, post)
}

// Delete handles DELETE /api/v1/blog/:id.
func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, nil)
}

// Feed handles GET /api/v1/blog/feed.xml.
func (h *BlogHandler) Feed(c *gin.Context) {
	posts, err := h.svc.Latest(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	body, err := renderFeed(h.feed, posts)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", body)
}
