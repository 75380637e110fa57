package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/wstore/webshop/internal/logging"
	"github.com/wstore/webshop/internal/server/config"
	"github.com/wstore/webshop/internal/server/models"
	"github.com/wstore/webshop/internal/server/repositories/products"
	"github.com/wstore/webshop/internal/server/services"
)

// SessionManager is the slice of the session service the HTTP layer uses.
type SessionManager interface {
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*services.Session, error)
	ResolveAccessToken(ctx context.Context, accessToken string) (*models.User, error)
}

// UserManager is the slice of the user service the HTTP layer uses.
type UserManager interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	AdminUpdate(ctx context.Context, id, firstName, lastName string, isAdmin bool) error
	Delete(ctx context.Context, id string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	UpdateDetails(ctx context.Context, userID, firstName, lastName, email string) error
	SetShippingDetails(ctx context.Context, userID string, address models.Address) error
	SetCheckoutAddress(ctx context.Context, userID string, address models.Address) error
}

// ProductManager is the slice of the product service the HTTP layer uses.
type ProductManager interface {
	Create(ctx context.Context, product *models.Product, image io.Reader) (*models.Product, error)
	GetAll(ctx context.Context) ([]*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Query(ctx context.Context, search string, page int) (*products.QueryResult, error)
	Update(ctx context.Context, id, name string, price float64) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// OrderManager is the slice of the order service the HTTP layer uses.
type OrderManager interface {
	Create(ctx context.Context, userID string, order *models.Order) (*models.Order, error)
	GetAll(ctx context.Context) ([]*models.Order, error)
	GetByUser(ctx context.Context, userID string) ([]*models.Order, error)
	Get(ctx context.Context, id, userID string) (*models.Order, error)
	Pay(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id string) error
}

// Server assembles the HTTP surface of the webshop.
type Server struct {
	config   *config.Config
	logger   logging.Logger
	sessions SessionManager
	users    UserManager
	products ProductManager
	orders   OrderManager
}

func NewServer(cfg *config.Config, logger logging.Logger,
	sessions SessionManager, users UserManager, products ProductManager, orders OrderManager) *Server {
	return &Server{
		config:   cfg,
		logger:   logger,
		sessions: sessions,
		users:    users,
		products: products,
		orders:   orders,
	}
}

// HTTPServer returns an http.Server bound to the configured address with the
// full route table installed.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.config.EndpointAddrHTTP,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
