// Package users declares the repository contract for user account records.
package users

import (
	"context"

	"github.com/wstore/webshop/internal/server/models"
)

// Repository defines the persistence operations for users. Implementations
// should return common.ErrorNotFound for lookups that match nothing.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}
