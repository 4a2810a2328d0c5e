package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/auth"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/jwt"
	"github.com/opsdesk/opsdesk-backend-go/internal/repository/postgresql"
)

type AuthServiceImpl struct {
	UserRepository         user.Repository
	RefreshTokenRepository postgresql.RefreshTokenRepository
	JWTService             jwt.Service
}

func NewAuthService(
	userRepo user.Repository,
	refreshTokenRepo postgresql.RefreshTokenRepository,
	jwtService jwt.Service,
) auth.Service {
	return &AuthServiceImpl{
		UserRepository:         userRepo,
		RefreshTokenRepository: refreshTokenRepo,
		JWTService:             jwtService,
	}
}

// Login implements auth.Service.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	usr, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, usr)
}

// Refresh implements auth.Service. Rotation: the presented token is revoked
// and a new pair is issued.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := a.JWTService.DecodeRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.RefreshTokenRepository.IsRevoked(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	usr, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	accessToken, accessExpiresAt, err := a.JWTService.GenerateAccessToken(usr.ID, usr.Email, usr.Role, usr.Department)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	newRefreshToken, refreshExpiresAt, err := a.JWTService.GenerateRefreshToken(usr.ID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	if err := a.RefreshTokenRepository.Rotate(ctx, usr.ID, refreshToken, newRefreshToken, refreshExpiresAt); err != nil {
		return auth.TokenResponse{}, err
	}

	return a.tokenResponse(usr, accessToken, accessExpiresAt, newRefreshToken, refreshExpiresAt), nil
}

// Logout implements auth.Service.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, err := a.JWTService.DecodeRefreshToken(refreshToken); err != nil {
		return auth.ErrInvalidToken
	}
	return a.RefreshTokenRepository.Revoke(ctx, refreshToken)
}

// LoginWithGoogle implements auth.Service. Sign-up via Google is not
// supported; only accounts that already exist can log in.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleID string, email string) (auth.TokenResponse, error) {
	usr, err := a.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrGoogleAccountUnknown
		}
		return auth.TokenResponse{}, err
	}

	if usr.GoogleID != nil && *usr.GoogleID != googleID {
		return auth.TokenResponse{}, auth.ErrGoogleAccountUnknown
	}

	return a.issueTokens(ctx, usr)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, usr user.User) (auth.TokenResponse, error) {
	accessToken, accessExpiresAt, err := a.JWTService.GenerateAccessToken(usr.ID, usr.Email, usr.Role, usr.Department)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	refreshToken, refreshExpiresAt, err := a.JWTService.GenerateRefreshToken(usr.ID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	if err := a.RefreshTokenRepository.Create(ctx, usr.ID, refreshToken, refreshExpiresAt); err != nil {
		return auth.TokenResponse{}, err
	}

	return a.tokenResponse(usr, accessToken, accessExpiresAt, refreshToken, refreshExpiresAt), nil
}

func (a *AuthServiceImpl) tokenResponse(usr user.User, accessToken string, accessExpiresAt int64, refreshToken string, refreshExpiresAt int64) auth.TokenResponse {
	return auth.TokenResponse{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiresAt,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
		UserID:           usr.ID,
		Name:             usr.Name,
		Role:             string(usr.Role),
		Department:       usr.Department,
	}
}
