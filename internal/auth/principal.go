package auth

import "context"

// Principal is the authenticated user of a single request.
type Principal struct {
	Username  string `json:"username"`
	SessionID string `json:"-"`
}

type contextKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
