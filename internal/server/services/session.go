// Package services contains the server-side business logic. This file
// implements SessionService, which owns the credential and session
// lifecycle: login, access-token renewal via refresh tokens, and the
// refresh token ledger.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wstore/webshop/internal/common"
	"github.com/wstore/webshop/internal/server/auth"
	"github.com/wstore/webshop/internal/server/config"
	"github.com/wstore/webshop/internal/server/models"
	"github.com/wstore/webshop/internal/server/repositories/repomanager"
)

// Session is the result of a successful login: the sanitized user plus a
// short-lived access token and a long-lived refresh token. The refresh token
// has already been recorded in the ledger.
type Session struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

// SessionService implements login, access-token issuance and renewal.
//
// Access tokens are stateless: verification needs only the signature and
// expiry. Refresh tokens are additionally tracked in a persisted ledger and
// are usable only while a live ledger entry exists.
type SessionService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	accessTokenSecret            []byte
	refreshTokenSecret           []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewSessionService constructs a SessionService using repositories and server config.
func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *SessionService {
	return &SessionService{
		db:                           db,
		repomanager:                  m,
		accessTokenSecret:            []byte(cfg.AccessTokenSecret),
		refreshTokenSecret:           []byte(cfg.RefreshTokenSecret),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Login verifies the email/password pair and, on success, issues an access
// and refresh token pair, recording the refresh token in the ledger. A wrong
// password and an unknown email both return common.ErrorInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	userRepo := s.repomanager.Users(s.db)
	user, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	accessToken, err := auth.GenerateToken(user.ID, s.accessTokenSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshToken, err := auth.GenerateToken(user.ID, s.refreshTokenSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	// The ledger retention window equals the signed refresh expiry, so an
	// entry never outlives its token and never expires before it.
	ledger := s.repomanager.RefreshTokens(s.db)
	if err := ledger.Create(ctx, user.ID, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}

	return &Session{
		User:         user.Sanitized(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a still-valid refresh token for a new access token. The
// refresh token itself is not rotated.
//
// The token must both exist in the ledger (common.ErrorUnknownToken
// otherwise) and pass signature/expiry verification
// (common.ErrorInvalidToken). The subject it names must still exist
// (common.ErrorNotFound).
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	ledger := s.repomanager.RefreshTokens(s.db)
	if _, err := ledger.Find(ctx, refreshToken); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnknownToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	// A ledger entry alone is not enough: the entry may reference a
	// tampered or stale token string.
	userID, err := auth.GetUserIDFromToken(refreshToken, s.refreshTokenSecret)
	if err != nil {
		return nil, common.ErrorInvalidToken
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	accessToken, err := auth.GenerateToken(user.ID, s.accessTokenSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &Session{User: user.Sanitized(), AccessToken: accessToken}, nil
}

// ResolveAccessToken verifies an access token and returns the sanitized user
// it was issued for. When the token verifies but the user record is gone,
// the returned user is nil with a nil error: the caller proceeds
// anonymously and downstream authorization rejects the request instead.
func (s *SessionService) ResolveAccessToken(ctx context.Context, accessToken string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(accessToken, s.accessTokenSecret)
	if err != nil {
		return nil, common.ErrorInvalidToken
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user.Sanitized(), nil
}

// PurgeExpiredTokens removes ledger entries past their retention window.
// Find never returns them, so this is purely storage reclamation.
func (s *SessionService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx)
}
