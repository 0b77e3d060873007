package domain

import "context"

// userKey is the context key for the authenticated user.
type userKey struct{}

// WithUser returns a new context carrying the authenticated user.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves the authenticated user from the context.
// Returns nil and false if no user is present.
func GetUser(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey{}).(*User)
	return user, ok
}
