// Package products provides a PostgreSQL-backed repository for catalog items.
package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wstore/webshop/internal/common"
	"github.com/wstore/webshop/internal/dbx"
	"github.com/wstore/webshop/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `id, name, price, image, stock_count, product_code, description`

func scanProduct(row interface{ Scan(dest ...any) error }) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.StockCount, &p.ProductCode, &p.Description)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	query := `
		INSERT INTO products (name, price, image, stock_count, product_code, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, product.Name, product.Price, product.Image,
		product.StockCount, product.ProductCode, product.Description).Scan(&product.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return product, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return products, nil
}

// Query pages through products whose name contains search (case-insensitive),
// ordered by name, and reports how many rows matched plus the catalog total.
func (r *PostgresRepository) Query(ctx context.Context, search string, page, pageSize int) (*QueryResult, error) {
	if page < 1 {
		page = 1
	}
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name ASC
		OFFSET $2 LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, search, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := &QueryResult{Products: []*models.Product{}}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result.Products = append(result.Products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	countQuery := `SELECT count(*) FROM products WHERE name ILIKE '%' || $1 || '%'`
	if err := r.db.QueryRowContext(ctx, countQuery, search).Scan(&result.Count); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM products`).Scan(&result.TotalCount); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $2, price = $3, image = $4, stock_count = $5, product_code = $6, description = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, product.ID, product.Name, product.Price,
		product.Image, product.StockCount, product.ProductCode, product.Description)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
