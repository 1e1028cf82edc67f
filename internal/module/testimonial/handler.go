package testimonial

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/pkg"
)

// TestimonialHandler handles REST API requests for testimonials.
type TestimonialHandler struct {
	svc Service
}

// NewTestimonialHandler creates a new TestimonialHandler with the given service.
func NewTestimonialHandler(svc Service) *TestimonialHandler {
	return &TestimonialHandler{svc: svc}
}

// Create handles POST /api/v1/testimonials.
func (h *TestimonialHandler) Create(c *gin.Context) {
	var req CreateTestimonialRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	t, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "testimonial created", t)
}

// List handles GET /api/v1/testimonials.
func (h *TestimonialHandler) List(c *gin.Context) {
	f, err := ParseFilter(c.Request.URL.Query())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	page, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Page(c, page)
}

// Stats handles GET /api/v1/testimonials/stats.
func (h *TestimonialHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, st)
}

// Get handles GET /api/v1/testimonials/:id.
func (h *TestimonialHandler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, t)
}

// Update handles PATCH /api/v1/testimonials/:id.
func (h *TestimonialHandler) Update(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateTestimonialRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	t, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, t)
}

// Delete handles DELETE /api/v1/testimonials/:id.
func (h *TestimonialHandler) Delete(c *gin.Context) {
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
