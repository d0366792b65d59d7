package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/auth"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/user"
	"github.com/chronos-hq/chronos-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	users      user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(users user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		users:      users,
		jwtService: jwtService,
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

// Refresh implements auth.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("get user by id: %w", err)
	}

	return s.issueTokens(u)
}

func (s *AuthServiceImpl) issueTokens(u user.User) (auth.TokenResponse, error) {
	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:  accessToken,
		ExpiresAt:    accessExp,
		RefreshToken: refreshToken,
		RefreshExp:   refreshExp,
		UserID:       u.ID,
		Email:        u.Email,
		Role:         string(u.Role),
	}, nil
}
