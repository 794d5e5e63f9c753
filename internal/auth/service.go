package auth

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"edudash/internal/model"
	"edudash/internal/repository"
)

// Service answers credential questions against a UserStore. All operations
// are synchronous; recoverable failures come back as the sentinel errors in
// internal/model and leave the store untouched.
type Service struct {
	store  repository.UserStore
	hasher Hasher

	// mu serializes load-modify-save cycles within this process. Sharing
	// one store between processes still needs external locking.
	mu  sync.Mutex
	now func() time.Time
}

func NewService(store repository.UserStore, hasher Hasher) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		now:    time.Now,
	}
}

// Authenticate verifies a username/password pair. On success it stamps the
// user's last login and persists the store. Unknown usernames and wrong
// passwords both return ErrInvalidCredentials so callers cannot tell the
// two apart.
func (s *Service) Authenticate(username string, password string) (model.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.Load()
	if err != nil {
		return "", err
	}

	idx := indexOf(users, username)
	if idx < 0 || !s.hasher.Verify(password, users[idx].PasswordHash) {
		return "", model.ErrInvalidCredentials
	}

	now := s.now().UTC().Truncate(time.Second)
	users[idx].LastLogin = &now
	if err := s.store.Save(users); err != nil {
		return "", err
	}

	slog.Info("user authenticated", "username", username, "role", users[idx].Role)
	return users[idx].Role, nil
}

// Register creates a new account. Only teacher and student roles can be
// assigned this way; admin accounts are seeded or created out of band.
func (s *Service) Register(username string, password string, role model.Role, email string) error {
	username = strings.TrimSpace(username)
	role = model.Role(strings.ToLower(strings.TrimSpace(string(role))))
	if username == "" || password == "" {
		return model.ErrInvalidInput
	}
	if !model.RegistrableRole(role) {
		return model.ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.Load()
	if err != nil {
		return err
	}

	if indexOf(users, username) >= 0 {
		return model.ErrUsernameTaken
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	users = append(users, model.User{
		Username:     username,
		PasswordHash: digest,
		Role:         role,
		Email:        email,
	})

	if err := s.store.Save(users); err != nil {
		return err
	}

	slog.Info("user registered", "username", username, "role", role)
	return nil
}

// ChangePassword replaces the stored digest after proving knowledge of the
// current credential. A wrong current password mutates nothing.
func (s *Service) ChangePassword(username string, currentPassword string, newPassword string) error {
	if newPassword == "" {
		return model.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.Load()
	if err != nil {
		return err
	}

	idx := indexOf(users, username)
	if idx < 0 || !s.hasher.Verify(currentPassword, users[idx].PasswordHash) {
		return model.ErrInvalidCurrentPassword
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	users[idx].PasswordHash = digest
	if err := s.store.Save(users); err != nil {
		return err
	}

	slog.Info("password changed", "username", username)
	return nil
}

// UpdatePreferences overwrites only the supplied preference fields.
func (s *Service) UpdatePreferences(username string, update model.PreferencesUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.Load()
	if err != nil {
		return err
	}

	idx := indexOf(users, username)
	if idx < 0 {
		return model.ErrUserNotFound
	}

	if update.LearningPreference != nil {
		users[idx].Preferences.LearningPreference = *update.LearningPreference
	}
	if update.PreferredPace != nil {
		users[idx].Preferences.PreferredPace = *update.PreferredPace
	}
	if update.ContentFormat != nil {
		users[idx].Preferences.ContentFormat = *update.ContentFormat
	}

	return s.store.Save(users)
}

// GetUser returns the profile for a username.
func (s *Service) GetUser(username string) (model.Profile, error) {
	user, err := s.store.FindByUsername(username)
	if err != nil {
		return model.Profile{}, err
	}

	return user.Profile(), nil
}

// ListUsers returns every profile in the store, for administrative views.
func (s *Service) ListUsers() ([]model.Profile, error) {
	users, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	profiles := make([]model.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}

	return profiles, nil
}

func indexOf(users []model.User, username string) int {
	for i, u := range users {
		if u.Username == username {
			return i
		}
	}
	return -1
}
