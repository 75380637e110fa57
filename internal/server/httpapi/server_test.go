package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/wstore/webshop/internal/logging"
	"github.com/wstore/webshop/internal/server/config"
	"github.com/wstore/webshop/internal/server/models"
	"github.com/wstore/webshop/internal/server/repositories/products"
	"github.com/wstore/webshop/internal/server/services"
)

// --- fakes ---

type fakeSessions struct {
	loginSession  *services.Session
	loginErr      error
	loginEmail    string
	loginPassword string

	refreshSession *services.Session
	refreshErr     error
	refreshedToken string

	resolveUser   *models.User
	resolveErr    error
	resolvedToken string
}

func (f *fakeSessions) Login(ctx context.Context, email, password string) (*services.Session, error) {
	f.loginEmail, f.loginPassword = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginSession, nil
}

func (f *fakeSessions) Refresh(ctx context.Context, refreshToken string) (*services.Session, error) {
	f.refreshedToken = refreshToken
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshSession, nil
}

func (f *fakeSessions) ResolveAccessToken(ctx context.Context, accessToken string) (*models.User, error) {
	f.resolvedToken = accessToken
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.resolveUser, nil
}

type fakeUsers struct {
	all    []*models.User
	allErr error
}

func (f *fakeUsers) Register(ctx context.Context, firstName, lastName, email, password string) (*models.User, error) {
	return &models.User{ID: "new", FirstName: firstName, LastName: lastName, Email: email}, nil
}
func (f *fakeUsers) GetAll(ctx context.Context) ([]*models.User, error) { return f.all, f.allErr }
func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	return &models.User{ID: id}, nil
}
func (f *fakeUsers) AdminUpdate(ctx context.Context, id, firstName, lastName string, isAdmin bool) error {
	return nil
}
func (f *fakeUsers) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeUsers) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	return nil
}
func (f *fakeUsers) UpdateDetails(ctx context.Context, userID, firstName, lastName, email string) error {
	return nil
}
func (f *fakeUsers) SetShippingDetails(ctx context.Context, userID string, address models.Address) error {
	return nil
}
func (f *fakeUsers) SetCheckoutAddress(ctx context.Context, userID string, address models.Address) error {
	return nil
}

type fakeProducts struct {
	queriedSearch string
	queriedPage   int
	queryResult   *products.QueryResult
}

func (f *fakeProducts) Create(ctx context.Context, product *models.Product, image io.Reader) (*models.Product, error) {
	return product, nil
}
func (f *fakeProducts) GetAll(ctx context.Context) ([]*models.Product, error) { return nil, nil }
func (f *fakeProducts) Get(ctx context.Context, id string) (*models.Product, error) {
	return &models.Product{ID: id}, nil
}
func (f *fakeProducts) Query(ctx context.Context, search string, page int) (*products.QueryResult, error) {
	f.queriedSearch, f.queriedPage = search, page
	if f.queryResult != nil {
		return f.queryResult, nil
	}
	return &products.QueryResult{}, nil
}
func (f *fakeProducts) Update(ctx context.Context, id, name string, price float64) (*models.Product, error) {
	return &models.Product{ID: id, Name: name, Price: price}, nil
}
func (f *fakeProducts) Delete(ctx context.Context, id string) error { return nil }

type fakeOrders struct {
	gotID     string
	gotUserID string
}

func (f *fakeOrders) Create(ctx context.Context, userID string, order *models.Order) (*models.Order, error) {
	order.ID = "o1"
	order.UserID = userID
	return order, nil
}
func (f *fakeOrders) GetAll(ctx context.Context) ([]*models.Order, error) { return nil, nil }
func (f *fakeOrders) GetByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	return nil, nil
}
func (f *fakeOrders) Get(ctx context.Context, id, userID string) (*models.Order, error) {
	f.gotID, f.gotUserID = id, userID
	return &models.Order{ID: id, UserID: userID}, nil
}
func (f *fakeOrders) Pay(ctx context.Context, id, userID string) error { return nil }
func (f *fakeOrders) Delete(ctx context.Context, id string) error      { return nil }

// --- helpers ---

func testConfig() *config.Config {
	return &config.Config{
		EndpointAddrHTTP:             ":0",
		AccessTokenValidityDuration:  5 * time.Minute,
		RefreshTokenValidityDuration: 7 * 24 * time.Hour,
		CORSOrigin:                   "https://shop.example.com",
		PayPalClientID:               "paypal-client-id",
	}
}

func newTestServer(t *testing.T, sessions *fakeSessions) (*Server, http.Handler) {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s := NewServer(testConfig(), logger, sessions, &fakeUsers{}, &fakeProducts{}, &fakeOrders{})
	return s, s.Handler()
}

func findCookie(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}
