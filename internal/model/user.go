package model

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// RegistrableRole reports whether a role may be assigned through
// self-registration. Admin accounts are only ever seeded or created by
// an existing admin.
func RegistrableRole(r Role) bool {
	return r == RoleTeacher || r == RoleStudent
}

// Preferences holds per-user personalization attributes. They are mutable
// independently of credentials and every field is optional.
type Preferences struct {
	LearningPreference string `json:"learning_preference,omitempty"`
	PreferredPace      string `json:"preferred_pace,omitempty"`
	ContentFormat      string `json:"content_format,omitempty"`
}

type User struct {
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	Email        string      `json:"email"`
	LastLogin    *time.Time  `json:"last_login,omitempty"`
	Preferences  Preferences `json:"preferences"`
}

// Profile is the externally visible projection of a User. It never carries
// the password hash.
type Profile struct {
	Username    string      `json:"username"`
	Role        Role        `json:"role"`
	Email       string      `json:"email"`
	LastLogin   *time.Time  `json:"last_login,omitempty"`
	Preferences Preferences `json:"preferences"`
}

func (u User) Profile() Profile {
	return Profile{
		Username:    u.Username,
		Role:        u.Role,
		Email:       u.Email,
		LastLogin:   u.LastLogin,
		Preferences: u.Preferences,
	}
}

// TokenClaims is the verified payload of an identity token.
type TokenClaims struct {
	Subject   string    `json:"sub"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// PreferencesUpdate is a partial update: nil fields are left untouched.
type PreferencesUpdate struct {
	LearningPreference *string `json:"learning_preference"`
	PreferredPace      *string `json:"preferred_pace"`
	ContentFormat      *string `json:"content_format"`
}
