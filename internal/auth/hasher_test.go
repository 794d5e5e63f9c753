package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSHA256Hasher(t *testing.T) {
	t.Parallel()

	hasher := SHA256Hasher{}

	t.Run("matches the legacy digest format", func(t *testing.T) {
		digest, err := hasher.Hash("admin123")
		require.NoError(t, err)
		require.Equal(t, "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9", digest)
	})

	t.Run("is deterministic", func(t *testing.T) {
		first, err := hasher.Hash("pa55word")
		require.NoError(t, err)
		second, err := hasher.Hash("pa55word")
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("verify", func(t *testing.T) {
		digest, err := hasher.Hash("secret")
		require.NoError(t, err)
		require.True(t, hasher.Verify("secret", digest))
		require.False(t, hasher.Verify("Secret", digest))
		require.False(t, hasher.Verify("secret", "not-a-digest"))
	})
}

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := BcryptHasher{Cost: 4} // minimum cost keeps the test fast

	digest, err := hasher.Hash("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", digest)

	require.True(t, hasher.Verify("secret", digest))
	require.False(t, hasher.Verify("wrong", digest))

	// Salted: two digests of the same input differ but both verify.
	other, err := hasher.Hash("secret")
	require.NoError(t, err)
	require.NotEqual(t, digest, other)
	require.True(t, hasher.Verify("secret", other))
}
