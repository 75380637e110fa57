// Package common defines shared constants and sentinel errors used across
// the layers of the webshop server. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Validation errors raised at the request boundary.
	ErrorValidation = errors.New("validation error")

	// Login errors. Deliberately generic: the response must not reveal
	// whether the email or the password was wrong.
	ErrorInvalidCredentials = errors.New("incorrect email or password")

	// Bearer/refresh token errors.
	ErrorMissingToken    = errors.New("missing token")
	ErrorMalformedHeader = errors.New("malformed authorization header")
	ErrorInvalidToken    = errors.New("invalid token")

	// ErrorUnknownToken means the refresh token has no ledger entry.
	ErrorUnknownToken = errors.New("unknown refresh token")

	// Authorization errors.
	ErrorForbidden = errors.New("forbidden")

	ErrorAlreadyExists = errors.New("already exists")
)
