package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	u.id, u.name, u.email, u.contact, u.password_hash, u.date_of_joining, u.role_id,
	u.report_by::text[], u.status, u.sick_leave, u.paid_leave,
	u.created_at, u.updated_at, u.deleted_at, COALESCE(r.name, '')
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Contact, &u.PasswordHash, &u.DateOfJoining, &u.RoleID,
		&u.ReportBy, &u.Status, &u.SickLeave, &u.PaidLeave,
		&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt, &u.RoleName,
	)
	if u.ReportBy == nil {
		u.ReportBy = []string{}
	}
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			id, name, email, contact, password_hash, date_of_joining, role_id,
			report_by, status, sick_leave, paid_leave, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6,
			$7::uuid[], $8, $9, $10, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	if newUser.ReportBy == nil {
		newUser.ReportBy = []string{}
	}
	if newUser.Status == "" {
		newUser.Status = user.StatusActive
	}

	err := q.QueryRow(ctx, query,
		newUser.Name, newUser.Email, newUser.Contact, newUser.PasswordHash, newUser.DateOfJoining, newUser.RoleID,
		newUser.ReportBy, newUser.Status, newUser.SickLeave, newUser.PaidLeave,
	).Scan(&newUser.ID, &newUser.CreatedAt, &newUser.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}

	return newUser, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1
	`

	found, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return found, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE LOWER(u.email) = LOWER($1)
	`

	found, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return found, nil
}

// ExistsByEmail implements user.UserRepository. excludeID skips one user,
// used when a user keeps their own email on update.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`
	args := []interface{}{email}
	if excludeID != "" {
		query = `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) AND id <> $2)`
		args = append(args, excludeID)
	}

	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListFilter) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	var where []string
	var args []interface{}
	argIndex := 1

	if !filter.IncludeInactive {
		where = append(where, "u.deleted_at IS NULL")
	}
	if !filter.All {
		where = append(where, fmt.Sprintf("u.id = ANY($%d::uuid[])", argIndex))
		args = append(args, nonNilIDs(filter.UserIDs))
		argIndex++
	}
	if filter.ExcludeID != "" {
		where = append(where, fmt.Sprintf("u.id <> $%d", argIndex))
		args = append(args, filter.ExcludeID)
	}

	query := `SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY u.name ASC"

	return r.queryUsers(ctx, q, query, args...)
}

// ListActive implements user.UserRepository.
func (r *userRepositoryImpl) ListActive(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.status = 'Active' AND u.deleted_at IS NULL
		ORDER BY u.id
	`
	return r.queryUsers(ctx, q, query)
}

func (r *userRepositoryImpl) queryUsers(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]user.User, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountByIDs implements user.UserRepository. Soft-deleted users do not count.
func (r *userRepositoryImpl) CountByIDs(ctx context.Context, ids []string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE id = ANY($1::uuid[]) AND deleted_at IS NULL`,
		nonNilIDs(ids),
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GetNames implements user.UserRepository.
func (r *userRepositoryImpl) GetNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT id::text, name FROM users WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Contact != nil {
		if *req.Contact == "" {
			updates["contact"] = nil
		} else {
			updates["contact"] = *req.Contact
		}
	}
	if req.DateOfJoining != nil {
		parsed, _ := time.Parse("2006-01-02", *req.DateOfJoining)
		updates["date_of_joining"] = parsed
	}
	if req.SickLeave != nil {
		updates["sick_leave"] = user.Balance(*req.SickLeave)
	}
	if req.PaidLeave != nil {
		updates["paid_leave"] = user.Balance(*req.PaidLeave)
	}
	if req.ReportBy != nil {
		updates["report_by"] = nonNilIDs(*req.ReportBy)
	}
	if req.RoleID != nil {
		updates["role_id"] = *req.RoleID
	}

	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		if col == "report_by" {
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d::uuid[]", col, i))
		} else {
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		}
		args = append(args, val)
		i++
	}
	args = append(args, req.ID)

	sql := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d AND deleted_at IS NULL", strings.Join(setClauses, ", "), i)

	cmd, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrUserEmailExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	cmd, err := q.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		passwordHash, userID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdateStatus implements user.UserRepository.
func (r *userRepositoryImpl) UpdateStatus(ctx context.Context, userID string, status user.Status) error {
	q := GetQuerier(ctx, r.db)

	cmd, err := q.Exec(ctx,
		`UPDATE users SET status = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		status, userID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// SoftDelete implements user.UserRepository. Leaves and attendance of the
// user are kept.
func (r *userRepositoryImpl) SoftDelete(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	cmd, err := q.Exec(ctx, `
		UPDATE users
		SET status = 'Inactive', deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// DeductLeaveBalance implements user.UserRepository. The guard in the WHERE
// clause keeps the counter from going negative under concurrent approvals.
func (r *userRepositoryImpl) DeductLeaveBalance(ctx context.Context, userID string, category user.BalanceCategory, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	var column string
	switch category {
	case user.BalanceSick:
		column = "sick_leave"
	case user.BalancePaid:
		column = "paid_leave"
	default:
		return fmt.Errorf("unknown balance category %q", category)
	}

	sql := fmt.Sprintf(`
		UPDATE users
		SET %[1]s = %[1]s - $1, updated_at = NOW()
		WHERE id = $2 AND %[1]s >= $1
	`, column)

	cmd, err := q.Exec(ctx, sql, days, userID)
	if err != nil {
		return fmt.Errorf("deduct %s: %w", column, err)
	}
	if cmd.RowsAffected() == 0 {
		return user.ErrInsufficientBalance
	}
	return nil
}

// nonNilIDs keeps pgx from encoding a nil slice as NULL.
func nonNilIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
