package role

import (
	"context"
	"fmt"
	"strings"

	"github.com/webwhiz/hrms-backend/internal/domain/role"
)

type RoleServiceImpl struct {
	role.RoleRepository
}

func NewRoleService(roleRepository role.RoleRepository) role.RoleService {
	return &RoleServiceImpl{RoleRepository: roleRepository}
}

// AddRole implements role.RoleService.
func (s *RoleServiceImpl) AddRole(ctx context.Context, req role.CreateRoleRequest) (role.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return role.RoleResponse{}, err
	}

	created, err := s.RoleRepository.Create(ctx, role.Role{
		Name:        strings.TrimSpace(req.Name),
		Permissions: req.Permissions,
	})
	if err != nil {
		return role.RoleResponse{}, err
	}
	return role.NewRoleResponse(created), nil
}

// ListRoles implements role.RoleService.
func (s *RoleServiceImpl) ListRoles(ctx context.Context) ([]role.RoleResponse, error) {
	roles, err := s.RoleRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	responses := make([]role.RoleResponse, 0, len(roles))
	for _, r := range roles {
		responses = append(responses, role.NewRoleResponse(r))
	}
	return responses, nil
}
