package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/webwhiz/hrms-backend/internal/domain/role"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/mocks"
	"golang.org/x/crypto/bcrypt"
)

const (
	founderID  = "0190a000-0000-7000-8000-000000000001"
	managerID  = "0190a000-0000-7000-8000-000000000002"
	employeeID = "0190a000-0000-7000-8000-000000000003"
	otherID    = "0190a000-0000-7000-8000-000000000004"
)

var (
	founder  = user.User{ID: founderID, Name: "Fatima", RoleName: "Founder", Status: user.StatusActive}
	manager  = user.User{ID: managerID, Name: "Manoj", RoleName: "Manager", ReportBy: []string{employeeID}, Status: user.StatusActive}
	employee = user.User{ID: employeeID, Name: "Esha", RoleName: "Employee", Status: user.StatusActive}
)

func newService() (*mocks.UserRepository, *mocks.RoleRepository, user.UserService) {
	users := new(mocks.UserRepository)
	roles := new(mocks.RoleRepository)
	users.On("GetNames", mock.Anything, mock.Anything).Return(map[string]string{employeeID: "Esha"}, nil).Maybe()
	return users, roles, NewUserService(users, roles)
}

func TestListUsers_FounderExcludesSelf(t *testing.T) {
	users, _, svc := newService()
	ctx := context.Background()

	users.On("GetByID", ctx, founderID).Return(founder, nil)
	users.On("List", ctx, user.ListFilter{All: true, ExcludeID: founderID}).Return([]user.User{manager, employee}, nil)

	got, err := svc.ListUsers(ctx, founderID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []user.UserRef{{ID: employeeID, Name: "Esha"}}, got[0].ReportBy)
	users.AssertExpectations(t)
}

func TestListUsers_ManagerSeesReportingLine(t *testing.T) {
	users, _, svc := newService()
	ctx := context.Background()

	users.On("GetByID", ctx, managerID).Return(manager, nil)
	users.On("List", ctx, user.ListFilter{UserIDs: []string{employeeID}}).Return([]user.User{employee}, nil)

	got, err := svc.ListUsers(ctx, managerID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, employeeID, got[0].ID)
}

func TestUpdateProfile_BalancesRequireFounder(t *testing.T) {
	users, _, svc := newService()
	ctx := context.Background()

	users.On("GetByID", ctx, managerID).Return(manager, nil)

	paid := 4.5
	_, err := svc.UpdateProfile(ctx, managerID, user.UpdateUserRequest{ID: employeeID, PaidLeave: &paid})
	assert.ErrorIs(t, err, user.ErrFounderAccessRequired)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateProfile_EmployeeCannotEditOthers(t *testing.T) {
	users, _, svc := newService()
	ctx := context.Background()

	users.On("GetByID", ctx, employeeID).Return(employee, nil)

	name := "Someone"
	_, err := svc.UpdateProfile(ctx, employeeID, user.UpdateUserRequest{ID: otherID, Name: &name})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestUpdateProfile_FounderSetsRoleAndReportBy(t *testing.T) {
	users, roles, svc := newService()
	ctx := context.Background()

	users.On("GetByID", ctx, founderID).Return(founder, nil)
	users.On("GetByID", ctx, managerID).Return(manager, nil)
	users.On("CountByIDs", ctx, []string{employeeID, otherID}).Return(2, nil)
	roles.On("GetByName", ctx, "Manager").Return(role.Role{ID: "role-m", Name: "Manager"}, nil)
	users.On("Update", ctx, mock.MatchedBy(func(req user.UpdateUserRequest) bool {
		return req.ID == managerID && req.RoleID != nil && *req.RoleID == "role-m" &&
			len(*req.ReportBy) == 2
	})).Return(nil)
	users.On("List", ctx, mock.Anything).Return([]user.User{manager}, nil)

	reportBy := []string{otherID, employeeID, employeeID}
	roleName := "Manager"
	_, err := svc.UpdateProfile(ctx, founderID, user.UpdateUserRequest{ID: managerID, ReportBy: &reportBy, Role: &roleName})
	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestUpdateProfile_UnknownReportBy(t *testing.T) {
	users, _, svc := newService()
	ctx := context.Background()

	users.On("GetByID", ctx, founderID).Return(founder, nil)
	users.On("GetByID", ctx, managerID).Return(manager, nil)
	users.On("CountByIDs", ctx, []string{otherID}).Return(0, nil)

	reportBy := []string{otherID}
	_, err := svc.UpdateProfile(ctx, founderID, user.UpdateUserRequest{ID: managerID, ReportBy: &reportBy})
	assert.ErrorIs(t, err, user.ErrInvalidReportBy)
}

func TestUpdateProfile_DuplicateEmail(t *testing.T) {
	users, _, svc := newService()
	ctx := context.Background()

	users.On("GetByID", ctx, employeeID).Return(employee, nil)
	users.On("ExistsByEmail", ctx, "taken@example.com", employeeID).Return(true, nil)

	email := "Taken@Example.com"
	_, err := svc.UpdateProfile(ctx, employeeID, user.UpdateUserRequest{ID: employeeID, Email: &email})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUpdatePassword(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	require.NoError(t, err)
	withHash := employee
	withHash.PasswordHash = string(hash)

	t.Run("old password mismatch", func(t *testing.T) {
		users, _, svc := newService()
		users.On("GetByID", ctx, employeeID).Return(withHash, nil)

		err := svc.UpdatePassword(ctx, employeeID, user.UpdatePasswordRequest{UserID: employeeID, OldPassword: "wrong-one", NewPassword: "new-password"})
		assert.ErrorIs(t, err, user.ErrOldPasswordMismatch)
	})

	t.Run("unchanged password", func(t *testing.T) {
		users, _, svc := newService()
		users.On("GetByID", ctx, employeeID).Return(withHash, nil)

		err := svc.UpdatePassword(ctx, employeeID, user.UpdatePasswordRequest{UserID: employeeID, OldPassword: "old-password", NewPassword: "old-password"})
		assert.ErrorIs(t, err, user.ErrPasswordUnchanged)
	})

	t.Run("other user's password", func(t *testing.T) {
		_, _, svc := newService()
		err := svc.UpdatePassword(ctx, managerID, user.UpdatePasswordRequest{UserID: employeeID, OldPassword: "old-password", NewPassword: "new-password"})
		assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	})

	t.Run("success", func(t *testing.T) {
		users, _, svc := newService()
		users.On("GetByID", ctx, employeeID).Return(withHash, nil)
		users.On("UpdatePassword", ctx, employeeID, mock.MatchedBy(func(h string) bool {
			return bcrypt.CompareHashAndPassword([]byte(h), []byte("new-password")) == nil
		})).Return(nil)

		err := svc.UpdatePassword(ctx, employeeID, user.UpdatePasswordRequest{UserID: employeeID, OldPassword: "old-password", NewPassword: "new-password"})
		require.NoError(t, err)
		users.AssertExpectations(t)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("founder only", func(t *testing.T) {
		users, _, svc := newService()
		users.On("GetByID", ctx, managerID).Return(manager, nil)

		_, err := svc.DeleteUser(ctx, managerID, employeeID)
		assert.ErrorIs(t, err, user.ErrFounderAccessRequired)
	})

	t.Run("not self", func(t *testing.T) {
		users, _, svc := newService()
		users.On("GetByID", ctx, founderID).Return(founder, nil)

		_, err := svc.DeleteUser(ctx, founderID, founderID)
		assert.ErrorIs(t, err, user.ErrCannotDeleteSelf)
	})

	t.Run("soft deletes and returns list", func(t *testing.T) {
		users, _, svc := newService()
		users.On("GetByID", ctx, founderID).Return(founder, nil)
		users.On("SoftDelete", ctx, employeeID).Return(nil)
		users.On("List", ctx, user.ListFilter{All: true, ExcludeID: founderID}).Return([]user.User{manager}, nil)

		got, err := svc.DeleteUser(ctx, founderID, employeeID)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		users.AssertExpectations(t)
	})
}
