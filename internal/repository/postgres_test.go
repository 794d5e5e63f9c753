package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"edudash/internal/model"
)

// fakeRow feeds canned column values through the pgx.Row interface so the
// scan and null-mapping paths can be exercised without a database.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}

	for i, d := range dest {
		if r.values[i] == nil {
			continue
		}
		switch v := d.(type) {
		case *string:
			*v = r.values[i].(string)
		case *model.Role:
			*v = model.Role(r.values[i].(string))
		case **time.Time:
			ts := r.values[i].(time.Time)
			*v = &ts
		case **string:
			s := r.values[i].(string)
			*v = &s
		default:
			return fmt.Errorf("unexpected scan destination %T", d)
		}
	}

	return nil
}

func TestScanUser(t *testing.T) {
	t.Parallel()

	t.Run("full row", func(t *testing.T) {
		lastLogin := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
		row := fakeRow{values: []any{
			"ada", "digest-a", "student", "ada@example.com", lastLogin,
			"visual", "fast", "video",
		}}

		u, err := scanUser(row)
		require.NoError(t, err)
		require.Equal(t, "ada", u.Username)
		require.Equal(t, "digest-a", u.PasswordHash)
		require.Equal(t, model.RoleStudent, u.Role)
		require.Equal(t, "ada@example.com", u.Email)
		require.NotNil(t, u.LastLogin)
		require.True(t, u.LastLogin.Equal(lastLogin))
		require.Equal(t, model.Preferences{
			LearningPreference: "visual",
			PreferredPace:      "fast",
			ContentFormat:      "video",
		}, u.Preferences)
	})

	t.Run("null optionals map to empty values", func(t *testing.T) {
		row := fakeRow{values: []any{
			"admin", defaultAdminDigest, "admin", "admin@example.com", nil,
			nil, nil, nil,
		}}

		u, err := scanUser(row)
		require.NoError(t, err)
		require.Nil(t, u.LastLogin)
		require.Equal(t, model.Preferences{}, u.Preferences)
	})

	t.Run("scan failure propagates", func(t *testing.T) {
		_, err := scanUser(fakeRow{err: fmt.Errorf("boom")})
		require.Error(t, err)
	})
}

func TestNullableRoundTrip(t *testing.T) {
	t.Parallel()

	require.Nil(t, nullable(""))

	ptr := nullable("visual")
	require.NotNil(t, ptr)
	require.Equal(t, "visual", *ptr)

	require.Empty(t, deref(nil))
	require.Equal(t, "visual", deref(ptr))
}
