package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/webwhiz/hrms-backend/internal/domain/auth"
	"github.com/webwhiz/hrms-backend/internal/domain/role"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AccountDefaults are applied to newly registered accounts.
type AccountDefaults struct {
	PasswordSuffix string
	SickLeave      decimal.Decimal
	PaidLeave      decimal.Decimal
}

type AuthServiceImpl struct {
	user.UserRepository
	role.RoleRepository
	jwt.Service
	defaults AccountDefaults
	now      func() time.Time
}

func NewAuthService(userRepository user.UserRepository, roleRepository role.RoleRepository, jwtService jwt.Service, defaults AccountDefaults) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		RoleRepository: roleRepository,
		Service:        jwtService,
		defaults:       defaults,
		now:            time.Now,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// DefaultPassword is the first three letters of name followed by suffix.
func DefaultPassword(name, suffix string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes) + suffix
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	exists, err := a.UserRepository.ExistsByEmail(ctx, req.Email, "")
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return user.UserResponse{}, user.ErrUserEmailExists
	}

	r, err := a.RoleRepository.GetByName(ctx, strings.TrimSpace(req.Role))
	if err != nil {
		return user.UserResponse{}, err
	}

	reportBy := slices.Compact(slices.Sorted(slices.Values(req.ReportBy)))
	if len(reportBy) > 0 {
		count, err := a.UserRepository.CountByIDs(ctx, reportBy)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to check reportBy: %w", err)
		}
		if count != len(reportBy) {
			return user.UserResponse{}, user.ErrInvalidReportBy
		}
	}

	hashed, err := a.hashPassword(DefaultPassword(req.Name, a.defaults.PasswordSuffix))
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		Contact:      req.Contact,
		PasswordHash: hashed,
		RoleID:       &r.ID,
		RoleName:     r.Name,
		ReportBy:     reportBy,
		Status:       user.StatusActive,
		SickLeave:    a.defaults.SickLeave,
		PaidLeave:    a.defaults.PaidLeave,
	}
	if req.DateOfJoining != nil {
		joined, _ := time.Parse("2006-01-02", *req.DateOfJoining)
		newUser.DateOfJoining = &joined
	}
	if req.SickLeave != nil {
		newUser.SickLeave = user.Balance(*req.SickLeave)
	}
	if req.PaidLeave != nil {
		newUser.PaidLeave = user.Balance(*req.PaidLeave)
	}

	created, err := a.UserRepository.Create(ctx, newUser)
	if err != nil {
		return user.UserResponse{}, err
	}
	created.RoleName = r.Name

	names, err := a.UserRepository.GetNames(ctx, created.ReportBy)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to resolve reportBy names: %w", err)
	}

	slog.Info("user registered", "user_id", created.ID, "role", r.Name)
	return user.NewUserResponse(created, names), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueToken(ctx, userData)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email string) (auth.LoginResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return a.issueToken(ctx, userData)
}

func (a *AuthServiceImpl) issueToken(ctx context.Context, userData user.User) (auth.LoginResponse, error) {
	if !userData.IsActive() {
		return auth.LoginResponse{}, auth.ErrUserInactive
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Email, string(userData.RoleKind()))
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	names, err := a.UserRepository.GetNames(ctx, userData.ReportBy)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to resolve reportBy names: %w", err)
	}

	return auth.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresAt - a.now().Unix(),
		User:      user.NewUserResponse(userData, names),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	if err := a.Service.RevokeToken(ctx, token, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
