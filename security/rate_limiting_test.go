package security

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowWithinLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 2)

	mock.ExpectIncr("ratelimit:ip:1.2.3.4").SetVal(1)
	mock.ExpectExpire("ratelimit:ip:1.2.3.4", time.Minute).SetVal(true)

	allowed, err := limiter.allow(context.Background(), "ip:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAllowRejectsOverLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 2)

	mock.ExpectIncr("ratelimit:ip:1.2.3.4").SetVal(3)

	allowed, err := limiter.allow(context.Background(), "ip:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAllowFailsOpenOnRedisError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 2)

	mock.ExpectIncr("ratelimit:ip:1.2.3.4").SetErr(assert.AnError)

	allowed, err := limiter.allow(context.Background(), "ip:1.2.3.4")
	require.Error(t, err)
	assert.True(t, allowed)
}
