package user

import (
	"context"

	"github.com/shopspring/decimal"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]User, error)
	ListActive(ctx context.Context) ([]User, error)
	CountByIDs(ctx context.Context, ids []string) (int, error)
	GetNames(ctx context.Context, ids []string) (map[string]string, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	UpdateStatus(ctx context.Context, userID string, status Status) error
	SoftDelete(ctx context.Context, userID string) error

	// DeductLeaveBalance subtracts days from one counter only when the
	// counter covers it. It returns ErrInsufficientBalance otherwise.
	DeductLeaveBalance(ctx context.Context, userID string, category BalanceCategory, days decimal.Decimal) error
}
