// Package refreshtokens declares the server-side ledger contract for issued
// refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/wstore/webshop/internal/server/models"
)

// Repository is the refresh token ledger. Each successful login records one
// entry; a user may hold any number of concurrent entries. An entry stops
// being readable once its retention window has passed, exactly as if it had
// been deleted at that instant.
type Repository interface {
	// Create stores a new ledger entry for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find looks up a live entry by its exact token string. Expired and
	// absent entries both return common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// DeleteExpired physically removes entries whose retention window has
	// passed and returns how many were removed. Find already filters them
	// out; this only reclaims storage.
	DeleteExpired(ctx context.Context) (int64, error)
}
