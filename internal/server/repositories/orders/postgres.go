// Package orders provides a PostgreSQL-backed repository for customer orders.
package orders

import (
	"context"
	"database/sql"
	"encoding/json"
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

const orderColumns = `id, user_id, items, shipping_address, total_price, ex_vat, vat,
	is_paid, paid_date, is_delivered, delivered_date, created_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (*models.Order, error) {
	o := &models.Order{}
	var items, address []byte
	err := row.Scan(&o.ID, &o.UserID, &items, &address, &o.TotalPrice, &o.ExVAT, &o.VAT,
		&o.IsPaid, &o.PaidDate, &o.IsDelivered, &o.DeliveredDate, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decoding order items: %w", err)
	}
	if err := json.Unmarshal(address, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decoding shipping address: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("encoding order items: %w", err)
	}
	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("encoding shipping address: %w", err)
	}
	query := `
		INSERT INTO orders (user_id, items, shipping_address, total_price, ex_vat, vat)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err = r.db.QueryRowContext(ctx, query, order.UserID, items, address,
		order.TotalPrice, order.ExVAT, order.VAT).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return order, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID string) (*models.Order, error) {
	// The owner predicate is unconditional: user_id is uuid, and making it
	// optional via a parameter compared to '' would fix the parameter to
	// text, leaving uuid = text without an operator.
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *PostgresRepository) GetByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return orders, nil
}

func (r *PostgresRepository) CountUnpaid(ctx context.Context, userID string) (int64, error) {
	var n int64
	query := `SELECT count(*) FROM orders WHERE user_id = $1 AND is_paid = false`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) MarkPaid(ctx context.Context, id, userID string) error {
	query := `
		UPDATE orders
		SET is_paid = true, paid_date = now()
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
