package utils

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is the adaptive cost factor used when none is configured.
const DefaultBcryptCost = 10

// HashPassword hashes a plaintext password with a fresh random salt. A cost
// of zero falls back to DefaultBcryptCost.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash verifies a plaintext password against a stored hash.
// bcrypt's compare is constant-time with respect to the mismatch position.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
