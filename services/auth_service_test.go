package services

import (
	"context"
	"testing"
	"time"

	"tickethub/utils"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func TestLogoutRevokesToken(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := NewAuthService(nil, newFakeProfileStore(), db, testJWTSecret, time.Hour)

	token, err := utils.SignToken(testJWTSecret, "u1", "u1@example.com", "user", time.Hour)
	require.NoError(t, err)

	key := revokedTokenPrefix + hashToken(token)
	mock.CustomMatch(func(expected, actual []interface{}) error {
		return nil // TTL is derived from the token expiry, only the call matters
	}).ExpectSet(key, "1", time.Hour).SetVal("OK")

	require.NoError(t, svc.Logout(context.Background(), token))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutIgnoresInvalidToken(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := NewAuthService(nil, newFakeProfileStore(), db, testJWTSecret, time.Hour)

	// No redis expectations: a garbage token must not reach the store.
	require.NoError(t, svc.Logout(context.Background(), "not-a-token"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsRevoked(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := NewAuthService(nil, newFakeProfileStore(), db, testJWTSecret, time.Hour)

	key := revokedTokenPrefix + hashToken("some-token")

	mock.ExpectExists(key).SetVal(1)
	assert.True(t, svc.IsRevoked(context.Background(), "some-token"))

	mock.ExpectExists(key).SetVal(0)
	assert.False(t, svc.IsRevoked(context.Background(), "some-token"))
}
