package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"edudash/internal/model"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewService("test-secret", 24*time.Hour)
	issued := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	signed, err := svc.Issue("ada", model.RoleStudent)
	require.NoError(t, err)

	claims, err := svc.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "ada", claims.Subject)
	require.Equal(t, model.RoleStudent, claims.Role)
	require.True(t, claims.IssuedAt.Equal(issued))
	require.True(t, claims.ExpiresAt.Equal(issued.Add(24*time.Hour)))
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	svc := NewService("test-secret", 24*time.Hour)
	issued := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	signed, err := svc.Issue("ada", model.RoleStudent)
	require.NoError(t, err)

	t.Run("valid just inside the window", func(t *testing.T) {
		svc.now = func() time.Time { return issued.Add(23 * time.Hour) }
		_, err := svc.Verify(signed)
		require.NoError(t, err)
	})

	t.Run("expired after the window", func(t *testing.T) {
		svc.now = func() time.Time { return issued.Add(25 * time.Hour) }
		_, err := svc.Verify(signed)
		require.ErrorIs(t, err, model.ErrTokenExpired)
	})
}

func TestVerifyTampered(t *testing.T) {
	t.Parallel()

	svc := NewService("test-secret", 24*time.Hour)

	signed, err := svc.Issue("ada", model.RoleStudent)
	require.NoError(t, err)

	// Flip one byte of the signature.
	tampered := []byte(signed)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = svc.Verify(string(tampered))
	require.ErrorIs(t, err, model.ErrTokenInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	svc := NewService("test-secret", 24*time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(input)
		require.ErrorIs(t, err, model.ErrTokenInvalid, "input %q", input)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	signed, err := NewService("secret-one", 24*time.Hour).Issue("ada", model.RoleStudent)
	require.NoError(t, err)

	_, err = NewService("secret-two", 24*time.Hour).Verify(signed)
	require.ErrorIs(t, err, model.ErrTokenInvalid)
}

func TestVerifyRejectsNonHMAC(t *testing.T) {
	t.Parallel()

	svc := NewService("test-secret", 24*time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  "ada",
		"role": "student",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	require.ErrorIs(t, err, model.ErrTokenInvalid)
}

func TestVerifyRequiresKnownRole(t *testing.T) {
	t.Parallel()

	svc := NewService("test-secret", 24*time.Hour)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "ada",
		"role": "superuser",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	require.ErrorIs(t, err, model.ErrTokenInvalid)
}

func TestTokenShape(t *testing.T) {
	t.Parallel()

	svc := NewService("test-secret", 0)
	require.Equal(t, DefaultTTL, svc.TTL())

	signed, err := svc.Issue("ada", model.RoleTeacher)
	require.NoError(t, err)
	require.Len(t, strings.Split(signed, "."), 3)
}
