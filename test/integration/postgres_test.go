//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"edudash/internal/database"
	"edudash/internal/model"
	"edudash/internal/repository"
)

// newPostgresStore connects to the database named by TEST_DATABASE_URL and
// hands back a store over a clean users table. Without the variable the
// test is skipped, so the suite stays runnable with no database around.
func newPostgresStore(t *testing.T) *repository.PostgresStore {
	t.Helper()

	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.New(ctx, databaseURL, 4, 1)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(ctx))
	_, err = db.Pool.Exec(ctx, `DELETE FROM users`)
	require.NoError(t, err)

	return repository.NewPostgresStore(db.Pool)
}

func TestPostgresStoreConformance(t *testing.T) {
	store := newPostgresStore(t)

	t.Run("empty table is seeded with the default admin", func(t *testing.T) {
		users, err := store.Load()
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.Equal(t, "admin", users[0].Username)
		require.Equal(t, model.RoleAdmin, users[0].Role)
		require.NotEmpty(t, users[0].PasswordHash)
	})

	t.Run("save replaces the whole collection", func(t *testing.T) {
		lastLogin := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
		users := []model.User{
			{
				Username:     "ada",
				PasswordHash: "digest-a",
				Role:         model.RoleStudent,
				Email:        "ada@example.com",
				LastLogin:    &lastLogin,
				Preferences: model.Preferences{
					LearningPreference: "visual",
				},
			},
		}
		require.NoError(t, store.Save(users))

		loaded, err := store.Load()
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		require.Equal(t, "ada", loaded[0].Username)
		require.Equal(t, "visual", loaded[0].Preferences.LearningPreference)
		require.Empty(t, loaded[0].Preferences.PreferredPace)
		require.NotNil(t, loaded[0].LastLogin)
		require.True(t, loaded[0].LastLogin.Equal(lastLogin))
	})

	t.Run("find by username is exact", func(t *testing.T) {
		user, err := store.FindByUsername("ada")
		require.NoError(t, err)
		require.Equal(t, model.RoleStudent, user.Role)

		_, err = store.FindByUsername("Ada")
		require.ErrorIs(t, err, model.ErrUserNotFound)
	})
}
