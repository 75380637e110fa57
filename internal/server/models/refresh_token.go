package models

import "time"

// RefreshToken is a ledger entry for an issued refresh token. One user may
// hold many concurrent entries (one per login, modeling multi-device
// sessions). Entries become unreadable once Expires has passed.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
