package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
)

// Service defines the authentication operations.
type Service interface {
	Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error)
	Me(ctx context.Context, caller *domain.Caller) (*domain.User, error)
	Register(ctx context.Context, req *RegisterRequest) (*domain.User, error)
	ChangePassword(ctx context.Context, caller *domain.Caller, req *ChangePasswordRequest) error
}

// authService implements Service.
type authService struct {
	tokens TokenIssuer
	users  *store.Repository[domain.User]
	now    func() time.Time
}

// NewService creates a new auth Service.
func NewService(tokens TokenIssuer, users *store.Repository[domain.User]) Service {
	return &authService{tokens: tokens, users: users, now: time.Now}
}

// Login authenticates an admin by email and password and returns a signed
// token. Unknown email and wrong password are indistinguishable.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	user, err := s.users.FindOne(ctx, pkg.Query{}.Eq("email", pkg.NormalizeEmail(req.Email)))
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalidCredentials()
	}

	token, exp, err := s.tokens.Issue(user)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to generate token", err)
	}

	now := s.now()
	user.LastLoginAt = &now
	if err := s.users.Save(ctx, user); err != nil {
		slog.WarnContext(ctx, "failed to record login time", slog.String("user_id", user.ID), slog.Any("error", err))
	}

	return &TokenResponse{Token: token, ExpiresAt: exp, User: user}, nil
}

// Me returns the account behind caller. A token for a deleted account is
// treated as unauthorized.
func (s *authService) Me(ctx context.Context, caller *domain.Caller) (*domain.User, error) {
	if !caller.Privileged() {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.users.Get(ctx, caller.UserID)
	if domain.IsNotFound(err) {
		return nil, domain.ErrUnauthorized
	}
	return user, err
}

// Register creates a new admin account. It is also used by the create-admin
// command to bootstrap the first account.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*domain.User, error) {
	email := pkg.NormalizeEmail(req.Email)
	taken, err := s.users.Exists(ctx, "email", email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, emailTaken()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
	}

	role := req.Role
	if role == "" {
		role = domain.RoleAdmin
	}
	user := &domain.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if domain.IsAlreadyExists(err) {
			return nil, emailTaken()
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *authService) ChangePassword(ctx context.Context, caller *domain.Caller, req *ChangePasswordRequest) error {
	user, err := s.Me(ctx, caller)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return domain.NewValidationError(map[string]string{"currentPassword": "Current password is incorrect"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
	}
	user.PasswordHash = string(hash)
	return s.users.Save(ctx, user)
}

func invalidCredentials() error {
	return domain.NewAppError(domain.CodeUnauthorized, "invalid email or password", nil)
}

func emailTaken() error {
	return domain.NewConflict("a user with this email already exists")
}
