package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/wstore/webshop/internal/common"
	"github.com/wstore/webshop/internal/server/auth"
	"github.com/wstore/webshop/internal/server/models"
	"github.com/wstore/webshop/internal/server/repositories/repomanager"
)

// UserService implements account management: registration, profile and
// address updates, password changes, and the admin user screens.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// Register creates an account. The plaintext password is hashed here, at the
// single point where a new secret enters the system; nothing downstream
// hashes implicitly on save.
func (s *UserService) Register(ctx context.Context, firstName, lastName, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	repo := s.repomanager.Users(s.db)
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
	}
	created, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created.Sanitized(), nil
}

// GetAll returns every account, password hashes stripped.
func (s *UserService) GetAll(ctx context.Context) ([]*models.User, error) {
	users, err := s.repomanager.Users(s.db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	sanitized := make([]*models.User, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, u.Sanitized())
	}
	return sanitized, nil
}

// GetByID returns a single account, password hash stripped.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// AdminUpdate rewrites the fields the admin edit screen controls: names and
// the admin flag.
func (s *UserService) AdminUpdate(ctx context.Context, id, firstName, lastName string, isAdmin bool) error {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.IsAdmin = isAdmin
	return repo.Update(ctx, user)
}

// Delete removes an account. Deleting an absent account is not an error.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Users(s.db).Delete(ctx, id)
}

// ChangePassword verifies the current password and replaces it with the new
// one. The new password must differ from the current one; repeat matching is
// checked at the boundary.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.VerifyPassword(currentPassword, user.PasswordHash) {
		return fmt.Errorf("%w: the current password entered is incorrect", common.ErrorValidation)
	}
	if newPassword == currentPassword {
		return fmt.Errorf("%w: please choose a password you've not used before", common.ErrorValidation)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}
	user.PasswordHash = hash
	return repo.Update(ctx, user)
}

// UpdateDetails rewrites the user's own profile fields.
func (s *UserService) UpdateDetails(ctx context.Context, userID, firstName, lastName, email string) error {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.Email = strings.ToLower(strings.TrimSpace(email))
	return repo.Update(ctx, user)
}

// SetShippingDetails stores the user's default shipping address.
func (s *UserService) SetShippingDetails(ctx context.Context, userID string, address models.Address) error {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.ShippingDetails = &address
	return repo.Update(ctx, user)
}

// SetCheckoutAddress stores the temporary address used for the next order.
func (s *UserService) SetCheckoutAddress(ctx context.Context, userID string, address models.Address) error {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.CheckoutAddress = &address
	return repo.Update(ctx, user)
}
