package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/simp-lee/jwt"

	"github.com/simp-lee/agencyhub/internal/domain"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
}

// TokenService issues and verifies HS256 access tokens on top of jwt.Service.
// Tokens carry the user id as subject and the account role as the only role.
type TokenService struct {
	jwtSvc jwt.Service
	expiry time.Duration
	now    func() time.Time
}

type clockFunc func() time.Time

func (f clockFunc) Now() time.Time { return f() }

// NewTokenService creates a TokenService. The secret must be at least
// jwt.MinSecretLength characters. Call Close to stop the service's
// background cleanup.
func NewTokenService(secret, issuer string, expiry time.Duration) (*TokenService, error) {
	if expiry <= 0 {
		return nil, errors.New("token expiry must be positive")
	}
	s := &TokenService{expiry: expiry, now: time.Now}
	jwtSvc, err := jwt.New(secret,
		jwt.WithIssuer(issuer),
		jwt.WithMaxTokenLifetime(expiry),
		jwt.WithUserRevocationTTL(max(expiry, jwt.DefaultUserRevocationTTL)),
		jwt.WithClock(clockFunc(func() time.Time { return s.now() })),
	)
	if err != nil {
		return nil, fmt.Errorf("create jwt service: %w", err)
	}
	s.jwtSvc = jwtSvc
	return s, nil
}

// Issue implements TokenIssuer.
func (s *TokenService) Issue(user *domain.User) (string, time.Time, error) {
	token, err := s.jwtSvc.GenerateToken(user.ID, []string{user.Role}, s.expiry)
	if err != nil {
		return "", time.Time{}, err
	}
	parsed, err := s.jwtSvc.ParseToken(token)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("parse generated token: %w", err)
	}
	return token, parsed.ExpiresAt, nil
}

// Verify checks signature, issuer and expiry and returns the caller the token
// was issued to. Any failure is reported as an unauthorized error.
func (s *TokenService) Verify(raw string) (*domain.Caller, error) {
	token, err := s.jwtSvc.ValidateToken(raw)
	if err != nil {
		return nil, invalidToken(err)
	}
	if token.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	caller := &domain.Caller{UserID: token.UserID}
	if len(token.Roles) > 0 {
		caller.Role = token.Roles[0]
	}
	return caller, nil
}

// Close stops the underlying jwt service.
func (s *TokenService) Close() {
	s.jwtSvc.Close()
}

func invalidToken(err error) error {
	msg := "invalid token"
	if errors.Is(err, jwt.ErrExpiredToken) {
		msg = "token expired"
	}
	return domain.NewAppError(domain.CodeUnauthorized, msg, err)
}
