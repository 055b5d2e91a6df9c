// Package actorctx carries the verified caller identity through a request
// context so code below the HTTP layer can read it without gin.
package actorctx

import (
	"context"

	"github.com/geocoder89/hallulies/internal/auth"
)

type ctxKey struct{}

func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*auth.Claims)
	return c, ok && c != nil
}

func UserIDFrom(ctx context.Context) (int64, bool) {
	c, ok := ClaimsFrom(ctx)
	if !ok {
		return 0, false
	}
	return c.UserID, c.UserID != 0
}
