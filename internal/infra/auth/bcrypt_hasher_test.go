package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

func newTestHasher() service.PasswordHasher {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{BcryptCost: 4} // minimum cost keeps tests fast

	return NewBcryptHasher(cfg)
}

func TestHashAndCheck_RoundTrip(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	ok, err := hasher.Check("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheck_Mismatch(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("password-one")
	require.NoError(t, err)

	ok, err := hasher.Check("password-two", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHash_SaltedPerCall(t *testing.T) {
	hasher := newTestHasher()

	first, err := hasher.Hash("same password")
	require.NoError(t, err)
	second, err := hasher.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCheck_MalformedHash(t *testing.T) {
	hasher := newTestHasher()

	ok, err := hasher.Check("whatever", "not-a-bcrypt-hash")
	assert.False(t, ok)
	require.Error(t, err)
	// Storage corruption is distinguishable from a plain mismatch.
	assert.True(t, errors.Is(err, service.ErrMalformedHash))
}
