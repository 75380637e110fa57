package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wstore/webshop/internal/common"
	"github.com/wstore/webshop/internal/dbx"
	"github.com/wstore/webshop/internal/server/models"
	"github.com/wstore/webshop/internal/server/repositories/repomanager"
)

// maxUnpaidOrders bounds how many outstanding orders a user may accumulate.
const maxUnpaidOrders = 5

// OrderService implements order placement, payment flagging, and the admin
// and customer order screens.
type OrderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewOrderService(db *sql.DB, m repomanager.RepositoryManager) *OrderService {
	return &OrderService{db: db, repomanager: m}
}

// Create places an order for the user. Once placed, the user's temporary
// checkout address is cleared so the next order re-confirms shipping; both
// writes happen in one transaction.
func (s *OrderService) Create(ctx context.Context, userID string, order *models.Order) (*models.Order, error) {
	order.UserID = userID

	unpaid, err := s.repomanager.Orders(s.db).CountUnpaid(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting unpaid orders: %w", err)
	}
	if unpaid >= maxUnpaidOrders {
		return nil, fmt.Errorf("%w: you can not have more than five outstanding orders at any one time", common.ErrorValidation)
	}

	var created *models.Order
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err = s.repomanager.Orders(tx).Create(ctx, order)
		if err != nil {
			return fmt.Errorf("error creating order: %w", err)
		}

		userRepo := s.repomanager.Users(tx)
		user, err := userRepo.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("error searching user: %w", err)
		}
		user.CheckoutAddress = nil
		if err := userRepo.Update(ctx, user); err != nil {
			return fmt.Errorf("error clearing checkout address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetAll returns every order (admin screen).
func (s *OrderService) GetAll(ctx context.Context) ([]*models.Order, error) {
	return s.repomanager.Orders(s.db).GetAll(ctx)
}

// GetByUser returns the user's own orders.
func (s *OrderService) GetByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	return s.repomanager.Orders(s.db).GetByUser(ctx, userID)
}

// Get returns one order, scoped to its owner. An order belonging to another
// user is indistinguishable from a missing one.
func (s *OrderService) Get(ctx context.Context, id, userID string) (*models.Order, error) {
	return s.repomanager.Orders(s.db).GetByID(ctx, id, userID)
}

// Pay flags the user's order as paid.
func (s *OrderService) Pay(ctx context.Context, id, userID string) error {
	return s.repomanager.Orders(s.db).MarkPaid(ctx, id, userID)
}

// Delete removes an order (admin only).
func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Orders(s.db).Delete(ctx, id)
}
