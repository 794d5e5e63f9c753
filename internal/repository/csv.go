package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"edudash/internal/model"
)

// lastLoginLayout matches the timestamp format existing user files carry.
const lastLoginLayout = "2006-01-02 15:04:05"

// defaultAdminDigest is the sha256 hex digest of the default admin
// credential ("admin123"). A fresh store is seeded with exactly this
// account.
const defaultAdminDigest = "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9"

// legacyPreferenceColumn is the pre-rename header for the learning
// preference column. Files still carrying it are rewritten with the current
// header on first load.
const legacyPreferenceColumn = "learning_style"

var csvHeader = []string{
	"username",
	"passwordHash",
	"role",
	"email",
	"lastLogin",
	"learningPreference",
	"preferredPace",
	"contentFormat",
}

// CSVStore persists users as a single CSV file. Save is a whole-file atomic
// replace (write to a temp file in the same directory, then rename); the
// internal mutex serializes writers within this process only.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

func NewCSVStore(path string) (*CSVStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: users file path is required", model.ErrStoreUnavailable)
	}
	return &CSVStore{path: path}, nil
}

func (s *CSVStore) Load() ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *CSVStore) Save(users []model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(users)
}

func (s *CSVStore) FindByUsername(username string) (model.User, error) {
	users, err := s.Load()
	if err != nil {
		return model.User{}, err
	}

	// Usernames are case-sensitive primary keys; no folding here.
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}

	return model.User{}, model.ErrUserNotFound
}

func (s *CSVStore) loadLocked() ([]model.User, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, storeErr("create data directory", err)
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		users := []model.User{defaultAdmin()}
		if err := s.saveLocked(users); err != nil {
			return nil, err
		}
		return users, nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, storeErr("open users file", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, storeErr("parse users file", err)
	}
	if len(records) == 0 {
		return nil, storeErr("parse users file", fmt.Errorf("missing header row"))
	}

	columns := map[string]int{}
	migrate := false
	for i, name := range records[0] {
		if name == legacyPreferenceColumn {
			name = "learningPreference"
			migrate = true
		}
		columns[name] = i
	}

	for _, required := range []string{"username", "passwordHash", "role"} {
		if _, ok := columns[required]; !ok {
			return nil, storeErr("parse users file", fmt.Errorf("missing %s column", required))
		}
	}

	users := make([]model.User, 0, len(records)-1)
	for _, record := range records[1:] {
		u := model.User{
			Username:     field(record, columns, "username"),
			PasswordHash: field(record, columns, "passwordHash"),
			Role:         model.Role(field(record, columns, "role")),
			Email:        field(record, columns, "email"),
		}
		// Optional columns absent from older files are backfilled empty.
		u.Preferences = model.Preferences{
			LearningPreference: field(record, columns, "learningPreference"),
			PreferredPace:      field(record, columns, "preferredPace"),
			ContentFormat:      field(record, columns, "contentFormat"),
		}
		if raw := field(record, columns, "lastLogin"); raw != "" {
			if ts, err := time.Parse(lastLoginLayout, raw); err == nil {
				u.LastLogin = &ts
			}
		}
		users = append(users, u)
	}

	if migrate {
		if err := s.saveLocked(users); err != nil {
			return nil, err
		}
	}

	return users, nil
}

func (s *CSVStore) saveLocked(users []model.User) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return storeErr("create data directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".users-*.csv")
	if err != nil {
		return storeErr("create temp file", err)
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	writeErr := writer.Write(csvHeader)
	for _, u := range users {
		if writeErr != nil {
			break
		}
		writeErr = writer.Write(record(u))
	}
	if writeErr == nil {
		writer.Flush()
		writeErr = writer.Error()
	}
	if writeErr == nil {
		writeErr = tmp.Sync()
	}

	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = os.Remove(tmpName)
		return storeErr("write users file", writeErr)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return storeErr("replace users file", err)
	}

	return nil
}

func record(u model.User) []string {
	lastLogin := ""
	if u.LastLogin != nil {
		lastLogin = u.LastLogin.Format(lastLoginLayout)
	}

	return []string{
		u.Username,
		u.PasswordHash,
		string(u.Role),
		u.Email,
		lastLogin,
		u.Preferences.LearningPreference,
		u.Preferences.PreferredPace,
		u.Preferences.ContentFormat,
	}
}

func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func defaultAdmin() model.User {
	return model.User{
		Username:     "admin",
		PasswordHash: defaultAdminDigest,
		Role:         model.RoleAdmin,
		Email:        "admin@example.com",
	}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", model.ErrStoreUnavailable, op, err)
}
