package auth

import (
	"context"
)

// Service defines authentication business logic.
type Service interface {
	// Login verifies credentials and issues access + refresh tokens.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Refresh rotates a refresh token into a fresh token pair.
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes a refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// LoginWithGoogle signs in a pre-registered user by verified Google
	// email and issues a token pair.
	LoginWithGoogle(ctx context.Context, googleID string, email string) (TokenResponse, error)
}
