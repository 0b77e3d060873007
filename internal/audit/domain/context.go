package domain

import "context"

// clientIPKey is the context key for the request client IP.
type clientIPKey struct{}

// WithClientIP returns a new context carrying the request client IP.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP retrieves the request client IP from the context.
// Returns an empty string if no IP is present.
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
