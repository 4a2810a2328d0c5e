package auth

import "errors"

// Auth domain errors
var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid token")
	ErrRefreshTokenRevoked  = errors.New("refresh token revoked")
	ErrGoogleAccountUnknown = errors.New("no account registered for this Google user")
)
