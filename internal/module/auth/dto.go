package auth

import (
	"strings"
	"time"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// passwordRule stays within bcrypt's 72-byte input limit for ASCII passwords.
const passwordRule = "required,min=8,max=72"

// LoginRequest represents the input for admin login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements pkg.Validator.
func (r *LoginRequest) Validate() error {
	c := pkg.NewChecker()
	c.Check("email", strings.TrimSpace(r.Email), "required,email")
	c.Check("password", r.Password, "required")
	return c.Err()
}

// RegisterRequest represents the input for creating another admin account.
// Role defaults to admin.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate implements pkg.Validator.
func (r *RegisterRequest) Validate() error {
	c := pkg.NewChecker()
	c.Check("fullName", strings.TrimSpace(r.FullName), "required,max=100")
	c.Check("email", strings.TrimSpace(r.Email), "required,email,max=255")
	c.Check("password", r.Password, passwordRule)
	c.Check("role", r.Role, "omitempty,"+pkg.OneOf([]string{domain.RoleAdmin, domain.RoleEditor}))
	return c.Err()
}

// ChangePasswordRequest is the input for PATCH /auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Validate implements pkg.Validator.
func (r *ChangePasswordRequest) Validate() error {
	c := pkg.NewChecker()
	c.Check("currentPassword", r.CurrentPassword, "required")
	c.Check("newPassword", r.NewPassword, passwordRule)
	if r.NewPassword != "" && r.NewPassword == r.CurrentPassword {
		c.Add("newPassword", "Must differ from the current password")
	}
	return c.Err()
}

// TokenResponse is returned after a successful login.
type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}
