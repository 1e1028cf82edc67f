package auth

import "github.com/gin-gonic/gin"

// AuthModule implements the app.Module interface for the auth domain.
type AuthModule struct {
	handler  *AuthHandler
	throttle []gin.HandlerFunc
}

// NewModule creates a new AuthModule. throttle, when non-nil, guards the
// login endpoint. Panics if h is nil.
func NewModule(h *AuthHandler, throttle gin.HandlerFunc) *AuthModule {
	if h == nil {
		panic("auth.NewModule: handler must not be nil")
	}
	m := &AuthModule{handler: h}
	if throttle != nil {
		m.throttle = []gin.HandlerFunc{throttle}
	}
	return m
}

// RegisterRoutes registers auth API routes.
func (m *AuthModule) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.POST("/auth/login", append(m.throttle, m.handler.Login)...)

	admin.GET("/auth/me", m.handler.Me)
	admin.POST("/auth/register", m.handler.Register)
	admin.PATCH("/auth/password", m.handler.ChangePassword)
}
