package users

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

const userColumns = `id, first_name, last_name, email, password_hash, is_admin, shipping_details, checkout_address`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	user := &models.User{}
	var shipping, checkout []byte
	if err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.IsAdmin, &shipping, &checkout); err != nil {
		return nil, err
	}
	if len(shipping) > 0 {
		user.ShippingDetails = &models.Address{}
		if err := json.Unmarshal(shipping, user.ShippingDetails); err != nil {
			return nil, fmt.Errorf("decoding shipping details: %w", err)
		}
	}
	if len(checkout) > 0 {
		user.CheckoutAddress = &models.Address{}
		if err := json.Unmarshal(checkout, user.CheckoutAddress); err != nil {
			return nil, fmt.Errorf("decoding checkout address: %w", err)
		}
	}
	return user, nil
}

func marshalAddress(a *models.Address) (any, error) {
	if a == nil {
		return nil, nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encoding address: %w", err)
	}
	return b, nil
}

// Create inserts the user and fills in the generated ID. A unique-violation
// on the email column surfaces as common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.PasswordHash, user.IsAdmin).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

// Update rewrites all mutable fields of the user row in place.
func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	shipping, err := marshalAddress(user.ShippingDetails)
	if err != nil {
		return err
	}
	checkout, err := marshalAddress(user.CheckoutAddress)
	if err != nil {
		return err
	}
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, password_hash = $5,
		    is_admin = $6, shipping_details = $7, checkout_address = $8
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, user.ID,
		user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.IsAdmin, shipping, checkout)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
