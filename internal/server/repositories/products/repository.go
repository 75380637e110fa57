// Package products declares the repository contract for catalog items.
package products

import (
	"context"

	"github.com/wstore/webshop/internal/server/models"
)

// QueryResult is one page of a catalog search plus the match and catalog
// totals the storefront renders pagination from.
type QueryResult struct {
	Products   []*models.Product
	Count      int64
	TotalCount int64
}

// Repository defines the persistence operations for products.
type Repository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetAll(ctx context.Context) ([]*models.Product, error)
	// Query returns one page (pageSize rows) of products whose name contains
	// the search string, case-insensitively, ordered by name ascending.
	Query(ctx context.Context, search string, page, pageSize int) (*QueryResult, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}
