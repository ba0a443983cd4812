package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key-with-at-least-32-chars!!"

func TestTokenManager_Roundtrip(t *testing.T) {
	manager := NewTokenManager(testSecret, 60)

	token, err := manager.GenerateAccessToken(42, "staff@bikeshop.test", []string{"manager"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(42), claims.StaffID)
	assert.Equal(t, "staff@bikeshop.test", claims.Email)
	assert.Equal(t, []string{"manager"}, claims.Roles)
	assert.Equal(t, "bikeshop-rental", claims.Issuer)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	manager := NewTokenManager(testSecret, 60)
	other := NewTokenManager("another-secret-key-with-32-characters!!!", 60)

	token, err := manager.GenerateAccessToken(42, "staff@bikeshop.test", nil)
	assert.NoError(t, err)

	claims, err := other.ValidateToken(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	manager := NewTokenManager(testSecret, 60)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, StaffClaims{
		StaffID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	tokenString, err := expired.SignedString([]byte(testSecret))
	assert.NoError(t, err)

	claims, err := manager.ValidateToken(tokenString)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	manager := NewTokenManager(testSecret, 60)

	claims, err := manager.ValidateToken("not.a.token")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
