// Package models declares the persistent records the webshop server works
// with: users, products, orders, and the refresh token ledger.
package models

// Address holds a shipping or checkout address attached to a user or order.
type Address struct {
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	PostCode string `json:"postCode,omitempty"`
	County   string `json:"county,omitempty"`
	Country  string `json:"country,omitempty"`
}

// User is the account record tokens are issued for. PasswordHash is never
// the plaintext secret; it must be produced by auth.HashPassword before the
// record is persisted.
type User struct {
	ID              string
	FirstName       string
	LastName        string
	Email           string
	PasswordHash    string
	IsAdmin         bool
	ShippingDetails *Address
	CheckoutAddress *Address
}

// Sanitized returns a copy of the user with the password hash stripped,
// suitable for returning to clients or attaching to a request context.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.PasswordHash = ""
	return &c
}
