package authinfra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPasswordService(t *testing.T) {
	svc := NewBcryptPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := svc.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, svc.VerifyPassword(hash, "hunter22"))
	assert.False(t, svc.VerifyPassword(hash, "hunter23"))
}

func TestRedisLoginLimiter_FailsOpenWithoutClient(t *testing.T) {
	var l *RedisLoginLimiter
	assert.True(t, l.Allow(context.Background(), "a@x.io"))

	l = NewRedisLoginLimiter(nil, 1, 0)
	assert.True(t, l.Allow(context.Background(), "a@x.io"))
	l.Reset(context.Background(), "a@x.io")
}
