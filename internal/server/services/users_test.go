package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/wstore/webshop/internal/common"
	"github.com/wstore/webshop/internal/dbx"
	"github.com/wstore/webshop/internal/server/auth"
	"github.com/wstore/webshop/internal/server/models"
	ordersrepo "github.com/wstore/webshop/internal/server/repositories/orders"
	productsrepo "github.com/wstore/webshop/internal/server/repositories/products"
	refreshtokensrepo "github.com/wstore/webshop/internal/server/repositories/refreshtokens"
	usersrepo "github.com/wstore/webshop/internal/server/repositories/users"
)

// recordingUsersRepo remembers what was written so tests can assert on it.
type recordingUsersRepo struct {
	byEmail    *models.User
	byEmailErr error
	byID       *models.User
	byIDErr    error
	createErr  error

	created *models.User
	updated *models.User
}

func (f *recordingUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c := *u
	c.ID = "new-id"
	f.created = &c
	return &c, nil
}
func (f *recordingUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmail, nil
}
func (f *recordingUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}
func (f *recordingUsersRepo) GetAll(ctx context.Context) ([]*models.User, error) { return nil, nil }
func (f *recordingUsersRepo) Update(ctx context.Context, u *models.User) error {
	c := *u
	f.updated = &c
	return nil
}
func (f *recordingUsersRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeRepoManager2 struct {
	u *recordingUsersRepo
}

func (m *fakeRepoManager2) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager2) Users(db dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager2) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return nil }
func (m *fakeRepoManager2) Products(db dbx.DBTX) productsrepo.Repository           { return nil }
func (m *fakeRepoManager2) Orders(db dbx.DBTX) ordersrepo.Repository               { return nil }

func TestRegister_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager2{u: &recordingUsersRepo{byEmailErr: common.ErrorNotFound}}
	s := NewUserService(db, rm)

	user, err := s.Register(context.Background(), "Will", "Smith", " Will@Example.COM ", "pa55word")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID != "new-id" || user.Email != "will@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash != "" {
		t.Fatalf("password hash leaked through registered user")
	}
	if rm.u.created == nil {
		t.Fatalf("no user persisted")
	}
	if rm.u.created.PasswordHash == "pa55word" {
		t.Fatalf("plaintext password persisted")
	}
	if !auth.VerifyPassword("pa55word", rm.u.created.PasswordHash) {
		t.Fatalf("persisted hash does not verify against the password")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager2{u: &recordingUsersRepo{byEmail: &models.User{ID: "u1"}}}
	s := NewUserService(db, rm)

	_, err := s.Register(context.Background(), "Will", "Smith", "will@example.com", "pa55word")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager2{u: &recordingUsersRepo{byID: hashedUser(t, "u1", "will@example.com", "pa55word")}}
	s := NewUserService(db, rm)

	err := s.ChangePassword(context.Background(), "u1", "not-the-password", "newpass1")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected ErrorValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "current password entered is incorrect") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestChangePassword_ReusedPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager2{u: &recordingUsersRepo{byID: hashedUser(t, "u1", "will@example.com", "pa55word")}}
	s := NewUserService(db, rm)

	err := s.ChangePassword(context.Background(), "u1", "pa55word", "pa55word")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected ErrorValidation, got %v", err)
	}
}

func TestChangePassword_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager2{u: &recordingUsersRepo{byID: hashedUser(t, "u1", "will@example.com", "pa55word")}}
	s := NewUserService(db, rm)

	if err := s.ChangePassword(context.Background(), "u1", "pa55word", "newpass1"); err != nil {
		t.Fatalf("ChangePassword error: %v", err)
	}
	if rm.u.updated == nil {
		t.Fatalf("no update persisted")
	}
	if !auth.VerifyPassword("newpass1", rm.u.updated.PasswordHash) {
		t.Fatalf("stored hash does not verify against the new password")
	}
}

func TestSetCheckoutAddress(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager2{u: &recordingUsersRepo{byID: &models.User{ID: "u1"}}}
	s := NewUserService(db, rm)

	addr := models.Address{Address: "1 Main St", City: "Leeds", PostCode: "LS1", County: "West Yorkshire", Country: "UK"}
	if err := s.SetCheckoutAddress(context.Background(), "u1", addr); err != nil {
		t.Fatalf("SetCheckoutAddress error: %v", err)
	}
	if rm.u.updated == nil || rm.u.updated.CheckoutAddress == nil {
		t.Fatalf("checkout address not persisted")
	}
	if rm.u.updated.CheckoutAddress.City != "Leeds" {
		t.Fatalf("unexpected address: %+v", rm.u.updated.CheckoutAddress)
	}
}
