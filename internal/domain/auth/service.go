package auth

import (
	"context"
	"time"

	"github.com/webwhiz/hrms-backend/internal/domain/user"
)

type AuthService interface {
	// Register creates an account with a generated default password.
	Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// LoginWithGoogle signs in an existing account by its verified email.
	LoginWithGoogle(ctx context.Context, email string) (LoginResponse, error)
	// Logout revokes the presented token until it expires.
	Logout(ctx context.Context, token string, expiresAt time.Time) error
}
