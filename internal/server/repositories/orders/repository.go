// Package orders declares the repository contract for customer orders.
package orders

import (
	"context"

	"github.com/wstore/webshop/internal/server/models"
)

// Repository defines the persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	// GetByID returns the order only when it belongs to userID; orders of
	// other users are reported as not found.
	GetByID(ctx context.Context, id, userID string) (*models.Order, error)
	GetAll(ctx context.Context) ([]*models.Order, error)
	GetByUser(ctx context.Context, userID string) ([]*models.Order, error)
	// CountUnpaid returns how many of the user's orders are not yet paid.
	CountUnpaid(ctx context.Context, userID string) (int64, error)
	// MarkPaid flags the user's order as paid and stamps the payment time.
	MarkPaid(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id string) error
}
