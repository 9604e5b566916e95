package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "testsecret"

func TestGenerateAndParseJWT(t *testing.T) {
	sess := Session{UserID: uuid.New(), Email: "budi@example.com", Role: RoleCustomer}

	token, err := GenerateJWT(testSecret, sess, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("Success", func(t *testing.T) {
		claims, err := ParseJWT(testSecret, token)
		require.NoError(t, err)
		assert.Equal(t, sess.UserID.String(), claims.UserID)
		assert.Equal(t, sess.Email, claims.Email)

		got, err := claims.Session()
		require.NoError(t, err)
		assert.Equal(t, sess, *got)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		_, err := ParseJWT("other", token)
		assert.Error(t, err)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		_, err := ParseJWT(testSecret, "not-a-token")
		assert.Error(t, err)
	})

	t.Run("NoSecret", func(t *testing.T) {
		_, err := ParseJWT("", token)
		assert.ErrorIs(t, err, ErrMissingSecret)
	})
}

func TestGenerateJWT_NoSecret(t *testing.T) {
	_, err := GenerateJWT("", Session{UserID: uuid.New(), Role: RoleAdmin}, time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestGenerateJWT_DefaultTTL(t *testing.T) {
	token, err := GenerateJWT(testSecret, Session{UserID: uuid.New(), Role: RoleAdmin}, 0)
	require.NoError(t, err)

	claims, err := ParseJWT(testSecret, token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseJWT_Expired(t *testing.T) {
	claims := CustomClaims{
		UserID: uuid.NewString(),
		Role:   RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseJWT(testSecret, expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestClaimsSession_Invalid(t *testing.T) {
	t.Run("BadUserID", func(t *testing.T) {
		_, err := (&CustomClaims{UserID: "42", Role: RoleAdmin}).Session()
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("UnknownRole", func(t *testing.T) {
		_, err := (&CustomClaims{UserID: uuid.NewString(), Role: "seller"}).Session()
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
