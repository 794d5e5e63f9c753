package model

import "errors"

var (
	// Authentication errors. Unknown username and wrong password are
	// deliberately merged into ErrInvalidCredentials so the API cannot be
	// used to enumerate accounts.
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrUsernameTaken          = errors.New("username already exists")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
	ErrInvalidRole            = errors.New("invalid role")

	// Token errors
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")

	// Session errors
	ErrSessionExpired = errors.New("session has expired")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// ErrStoreUnavailable marks the credential store as unreadable or
	// unwritable. It is fatal for the operation and never retried here;
	// retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("user store unavailable")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
