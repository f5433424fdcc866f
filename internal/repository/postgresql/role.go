package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/webwhiz/hrms-backend/internal/domain/role"
	"github.com/webwhiz/hrms-backend/internal/pkg/database"
)

type roleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) role.RoleRepository {
	return &roleRepositoryImpl{db: db}
}

// Create implements role.RoleRepository.
func (r *roleRepositoryImpl) Create(ctx context.Context, newRole role.Role) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	if newRole.Permissions == nil {
		newRole.Permissions = []string{}
	}

	query := `
		INSERT INTO roles (id, name, permissions, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, newRole.Name, newRole.Permissions).
		Scan(&newRole.ID, &newRole.CreatedAt, &newRole.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return role.Role{}, role.ErrRoleNameExists
		}
		return role.Role{}, fmt.Errorf("insert role: %w", err)
	}
	return newRole, nil
}

// GetByID implements role.RoleRepository.
func (r *roleRepositoryImpl) GetByID(ctx context.Context, id string) (role.Role, error) {
	return r.getOne(ctx, `SELECT id, name, permissions, created_at, updated_at FROM roles WHERE id = $1`, id)
}

// GetByName implements role.RoleRepository. Matching ignores case.
func (r *roleRepositoryImpl) GetByName(ctx context.Context, name string) (role.Role, error) {
	return r.getOne(ctx, `SELECT id, name, permissions, created_at, updated_at FROM roles WHERE LOWER(name) = LOWER($1)`, name)
}

func (r *roleRepositoryImpl) getOne(ctx context.Context, query string, arg string) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	var found role.Role
	err := q.QueryRow(ctx, query, arg).Scan(&found.ID, &found.Name, &found.Permissions, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role.Role{}, role.ErrRoleNotFound
		}
		return role.Role{}, err
	}
	return found, nil
}

// List implements role.RoleRepository.
func (r *roleRepositoryImpl) List(ctx context.Context) ([]role.Role, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, permissions, created_at, updated_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []role.Role{}
	for rows.Next() {
		var rl role.Role
		if err := rows.Scan(&rl.ID, &rl.Name, &rl.Permissions, &rl.CreatedAt, &rl.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, rl)
	}
	return roles, rows.Err()
}
