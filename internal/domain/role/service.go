package role

import "context"

type RoleService interface {
	AddRole(ctx context.Context, req CreateRoleRequest) (RoleResponse, error)
	ListRoles(ctx context.Context) ([]RoleResponse, error)
}
