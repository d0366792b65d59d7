package auth

import (
	"context"
)

// AuthService issues JWTs for the API boundary. Directory management,
// registration and invitation flows live outside this service.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
}
