package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/wstore/webshop/internal/server/models"
	"github.com/wstore/webshop/internal/server/repositories/products"
	"github.com/wstore/webshop/internal/server/repositories/repomanager"
)

// productsPageSize is the page length of catalog search results.
const productsPageSize = 10

// ImageStore persists a product image and returns its public URL.
type ImageStore interface {
	Store(ctx context.Context, image io.Reader) (string, error)
}

// ProductService implements catalog management and search.
type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ImageStore
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager, images ImageStore) *ProductService {
	return &ProductService{db: db, repomanager: m, images: images}
}

// Create stores a new catalog item. When image is non-nil it is resized,
// uploaded to object storage, and its public URL recorded on the product.
func (s *ProductService) Create(ctx context.Context, product *models.Product, image io.Reader) (*models.Product, error) {
	if image != nil {
		url, err := s.images.Store(ctx, image)
		if err != nil {
			return nil, fmt.Errorf("error storing product image: %w", err)
		}
		product.Image = url
	}
	created, err := s.repomanager.Products(s.db).Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("error creating product: %w", err)
	}
	return created, nil
}

// GetAll returns the whole catalog.
func (s *ProductService) GetAll(ctx context.Context) ([]*models.Product, error) {
	return s.repomanager.Products(s.db).GetAll(ctx)
}

// Get returns one catalog item.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.repomanager.Products(s.db).GetByID(ctx, id)
}

// Query searches the catalog by name substring, ten items per page.
func (s *ProductService) Query(ctx context.Context, search string, page int) (*products.QueryResult, error) {
	return s.repomanager.Products(s.db).Query(ctx, search, page, productsPageSize)
}

// Update rewrites the name and price of an existing item, matching what the
// admin edit screen controls.
func (s *ProductService) Update(ctx context.Context, id, name string, price float64) (*models.Product, error) {
	repo := s.repomanager.Products(s.db)
	product, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = name
	product.Price = price
	if err := repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a catalog item. Deleting an absent item is not an error.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Products(s.db).Delete(ctx, id)
}
