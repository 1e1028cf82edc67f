package domain

import "context"

// Roles an admin account may hold.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// Caller is the authenticated identity behind a request. A nil *Caller is an
// anonymous (public) caller.
type Caller struct {
	UserID string
	Role   string
}

// Privileged reports whether the caller may see hidden records.
func (c *Caller) Privileged() bool {
	return c != nil && c.UserID != ""
}

type callerKey struct{}

// WithCaller returns a copy of ctx carrying the caller.
func WithCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom extracts the caller stored by WithCaller, or nil.
func CallerFrom(ctx context.Context) *Caller {
	c, _ := ctx.Value(callerKey{}).(*Caller)
	return c
}
