package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrUserInactive        = errors.New("account is no longer active")
	ErrGoogleNotConfigured = errors.New("google login is not configured")
	ErrInvalidOAuthState   = errors.New("invalid oauth state")
)
