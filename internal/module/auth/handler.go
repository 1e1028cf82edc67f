package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// AuthHandler handles REST API requests for authentication.
type AuthHandler struct {
	svc Service
}

// NewHandler creates a new AuthHandler with the given service.
func NewHandler(svc Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	tokenResp, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, tokenResp)
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := h.svc.Me(ctx, domain.CallerFrom(ctx))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, user)
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "user registered successfully", user)
}

// ChangePassword handles PATCH /api/v1/auth/password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !pkg.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.svc.ChangePassword(ctx, domain.CallerFrom(ctx), &req); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, nil)
}
