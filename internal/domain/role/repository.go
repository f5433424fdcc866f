package role

import "context"

type RoleRepository interface {
	Create(ctx context.Context, newRole Role) (Role, error)
	GetByID(ctx context.Context, id string) (Role, error)
	GetByName(ctx context.Context, name string) (Role, error)
	List(ctx context.Context) ([]Role, error)
}
