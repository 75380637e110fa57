// Package httpapi exposes the webshop over HTTP: JSON handlers, the bearer
// token middleware, and the error boundary that maps service errors to
// status codes.
package httpapi

import (
	"context"

	"github.com/wstore/webshop/internal/server/models"
)

type ctxKey string

const principalKey ctxKey = "principal"

// withPrincipal attaches the resolved, sanitized user to the request context.
func withPrincipal(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, principalKey, user)
}

// PrincipalFromContext returns the authenticated user for this request, or
// nil when the request is anonymous. A nil principal uniformly covers both
// "no token presented" and "token subject no longer exists".
func PrincipalFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(principalKey).(*models.User)
	return user
}
