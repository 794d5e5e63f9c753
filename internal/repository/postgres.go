package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"edudash/internal/model"
)

const userColumns = `username, password_hash, role, email, last_login,
	learning_preference, preferred_pace, content_format`

// PostgresStore implements UserStore on a pgx pool. Save keeps the
// whole-collection replace semantics of the file store by running a
// delete-and-reinsert inside one transaction, so readers see either the old
// or the new collection, never a mix.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Load() ([]model.User, error) {
	ctx := context.Background()

	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, storeErr("query users", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storeErr("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate users", err)
	}

	if len(users) == 0 {
		admin := defaultAdmin()
		if err := s.Save([]model.User{admin}); err != nil {
			return nil, err
		}
		return []model.User{admin}, nil
	}

	return users, nil
}

func (s *PostgresStore) Save(users []model.User) error {
	ctx := context.Background()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM users`); err != nil {
		return storeErr("clear users", err)
	}

	for _, u := range users {
		_, err := tx.Exec(ctx, `
			INSERT INTO users (`+userColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			u.Username, u.PasswordHash, string(u.Role), u.Email, u.LastLogin,
			nullable(u.Preferences.LearningPreference),
			nullable(u.Preferences.PreferredPace),
			nullable(u.Preferences.ContentFormat))
		if err != nil {
			return storeErr("insert user", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit users", err)
	}

	return nil
}

func (s *PostgresStore) FindByUsername(username string) (model.User, error) {
	row := s.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, storeErr("find user", err)
	}

	return u, nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var (
		u                        model.User
		preference, pace, format *string
	)

	err := row.Scan(&u.Username, &u.PasswordHash, &u.Role, &u.Email, &u.LastLogin,
		&preference, &pace, &format)
	if err != nil {
		return model.User{}, err
	}

	u.Preferences = model.Preferences{
		LearningPreference: deref(preference),
		PreferredPace:      deref(pace),
		ContentFormat:      deref(format),
	}

	return u, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
