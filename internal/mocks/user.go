package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/webwhiz/hrms-backend/internal/domain/role"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	args := m.Called(ctx, newUser)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]user.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *UserRepository) ListActive(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *UserRepository) CountByIDs(ctx context.Context, ids []string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *UserRepository) GetNames(ctx context.Context, ids []string) (map[string]string, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, req user.UpdateUserRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

func (m *UserRepository) UpdateStatus(ctx context.Context, userID string, status user.Status) error {
	return m.Called(ctx, userID, status).Error(0)
}

func (m *UserRepository) SoftDelete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *UserRepository) DeductLeaveBalance(ctx context.Context, userID string, category user.BalanceCategory, days decimal.Decimal) error {
	return m.Called(ctx, userID, category, days).Error(0)
}

type RoleRepository struct {
	mock.Mock
}

func (m *RoleRepository) Create(ctx context.Context, newRole role.Role) (role.Role, error) {
	args := m.Called(ctx, newRole)
	return args.Get(0).(role.Role), args.Error(1)
}

func (m *RoleRepository) GetByID(ctx context.Context, id string) (role.Role, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(role.Role), args.Error(1)
}

func (m *RoleRepository) GetByName(ctx context.Context, name string) (role.Role, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(role.Role), args.Error(1)
}

func (m *RoleRepository) List(ctx context.Context) ([]role.Role, error) {
	args := m.Called(ctx)
	return args.Get(0).([]role.Role), args.Error(1)
}
