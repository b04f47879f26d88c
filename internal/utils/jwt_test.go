package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestJWTUtil_GenerateToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", time.Hour)

	tokenString, err := jwtUtil.GenerateToken(1, "user", "John Doe")

	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	// Validate the token to ensure it's well-formed and contains correct claims
	claims, err := jwtUtil.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "John Doe", claims.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTUtil_ValidateToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", time.Hour)

	tokenString, _ := jwtUtil.GenerateToken(42, "user", "Jane Doe")

	claims, err := jwtUtil.ValidateToken(tokenString)

	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "Jane Doe", claims.Username)
}

func TestJWTUtil_ValidateToken_InvalidToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", time.Hour)

	claims, err := jwtUtil.ValidateToken("not-a-token")

	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTUtil_ValidateToken_WrongSecret(t *testing.T) {
	tokenString, _ := NewJWTUtil("secret", time.Hour).GenerateToken(1, "user", "John Doe")

	claims, err := NewJWTUtil("other-secret", time.Hour).ValidateToken(tokenString)

	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTUtil_ValidateToken_Expired(t *testing.T) {
	// Negative TTL issues a token that is already past its expiry
	jwtUtil := NewJWTUtil("secret", -time.Minute)

	tokenString, err := jwtUtil.GenerateToken(1, "user", "John Doe")
	assert.NoError(t, err)

	claims, err := jwtUtil.ValidateToken(tokenString)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTUtil_ValidateToken_TamperedClaims(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", time.Hour)
	tokenString, _ := jwtUtil.GenerateToken(1, "user", "John Doe")

	// Re-sign the same claims with a different key to simulate tampering
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{
		UserID: 1,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	forgedString, _ := forged.SignedString([]byte("attacker"))
	assert.NotEqual(t, tokenString, forgedString)

	claims, err := jwtUtil.ValidateToken(forgedString)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
