package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the webshop has always used for
// password hashes at rest.
const bcryptCost = 12

// HashPassword produces a salted one-way hash of the plaintext password.
// Every code path that accepts a new plaintext password must call this
// before persisting the user record; nothing hashes implicitly on save.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash. The
// comparison runs in constant time relative to the password content.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
