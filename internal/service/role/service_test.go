package role

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webwhiz/hrms-backend/internal/domain/role"
	"github.com/webwhiz/hrms-backend/internal/mocks"
	"github.com/webwhiz/hrms-backend/internal/pkg/validator"
)

func TestAddRole(t *testing.T) {
	ctx := context.Background()
	roles := new(mocks.RoleRepository)
	svc := NewRoleService(roles)

	roles.On("Create", ctx, role.Role{Name: "Auditor"}).Return(role.Role{ID: "r1", Name: "Auditor"}, nil)

	got, err := svc.AddRole(ctx, role.CreateRoleRequest{Name: "  Auditor "})
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)
	assert.Equal(t, []string{}, got.Permissions)
}

func TestAddRole_Validation(t *testing.T) {
	svc := NewRoleService(new(mocks.RoleRepository))

	_, err := svc.AddRole(context.Background(), role.CreateRoleRequest{Name: " "})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "name is required", verrs.ToMap()["name"])
}

func TestAddRole_Duplicate(t *testing.T) {
	ctx := context.Background()
	roles := new(mocks.RoleRepository)
	roles.On("Create", ctx, role.Role{Name: "Manager"}).Return(role.Role{}, role.ErrRoleNameExists)

	_, err := NewRoleService(roles).AddRole(ctx, role.CreateRoleRequest{Name: "Manager"})
	assert.ErrorIs(t, err, role.ErrRoleNameExists)
}
