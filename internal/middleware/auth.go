package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// TokenVerifier turns a bearer token into the caller it was issued to.
type TokenVerifier interface {
	Verify(token string) (*domain.Caller, error)
}

// Auth returns a gin middleware that requires "Authorization: Bearer <token>".
// A verified caller is stored in the request context (see domain.CallerFrom);
// anything else is answered with 401 and the chain stops.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	if verifier == nil {
		panic("middleware.Auth: verifier must not be nil")
	}
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			pkg.Error(c, domain.NewAppError(domain.CodeUnauthorized, "authorization token required", nil))
			c.Abort()
			return
		}

		caller, err := verifier.Verify(token)
		if err != nil {
			pkg.Error(c, err)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(domain.WithCaller(c.Request.Context(), caller))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
