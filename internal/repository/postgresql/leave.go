package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/webwhiz/hrms-backend/internal/domain/leave"
	"github.com/webwhiz/hrms-backend/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `
	l.id, l.user_id, l.start_date, l.end_date, l.reason, l.leave_type, l.status,
	l.leave_details, l.attachment, l.decided_by, l.decided_at, l.created_at, l.updated_at,
	u.name
`

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID, &l.UserID, &l.StartDate, &l.EndDate, &l.Reason, &l.LeaveType, &l.Status,
		&l.LeaveDetails, &l.Attachment, &l.DecidedBy, &l.DecidedAt, &l.CreatedAt, &l.UpdatedAt,
		&l.UserName,
	)
	return l, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (
			id, user_id, start_date, end_date, reason, leave_type, status,
			leave_details, attachment, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6,
			$7, $8, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		l.UserID, l.StartDate, l.EndDate, l.Reason, l.LeaveType, l.Status,
		l.LeaveDetails, l.Attachment,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("insert leave: %w", err)
	}

	return l, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + `
		FROM leaves l
		JOIN users u ON u.id = l.user_id
		WHERE l.id = $1
	`

	found, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, err
	}
	return found, nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.ListFilter) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + `
		FROM leaves l
		JOIN users u ON u.id = l.user_id`
	var args []interface{}
	if !filter.All {
		query += ` WHERE l.user_id = ANY($1::uuid[])`
		args = append(args, nonNilIDs(filter.UserIDs))
	}
	query += ` ORDER BY l.start_date DESC, l.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaves := []leave.Leave{}
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

// Update implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Update(ctx context.Context, l leave.Leave) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET start_date = $1, end_date = $2, reason = $3, leave_type = $4,
			leave_details = $5, attachment = $6, updated_at = NOW()
		WHERE id = $7 AND status = 'Pending'
	`

	cmd, err := q.Exec(ctx, query,
		l.StartDate, l.EndDate, l.Reason, l.LeaveType, l.LeaveDetails, l.Attachment, l.ID,
	)
	if err != nil {
		return fmt.Errorf("update leave: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOr(ctx, l.ID, leave.ErrLeaveNotEditable)
	}
	return nil
}

// TransitionStatus implements leave.LeaveRepository. The status guard makes
// the transition one-way: only one decision on a leave can ever succeed.
func (r *leaveRepositoryImpl) TransitionStatus(ctx context.Context, id string, status leave.Status, decidedBy string, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET status = $1, decided_by = $2, decided_at = $3, updated_at = NOW()
		WHERE id = $4 AND status = 'Pending'
	`

	cmd, err := q.Exec(ctx, query, status, decidedBy, decidedAt, id)
	if err != nil {
		return fmt.Errorf("transition leave status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOr(ctx, id, leave.ErrLeaveAlreadyProcessed)
	}
	return nil
}

// HasActiveOverlap implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) HasActiveOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leaves
			WHERE user_id = $1
				AND status IN ('Pending', 'Approved')
				AND start_date <= $3 AND end_date >= $2
				AND id::text <> $4
		)
	`

	var overlaps bool
	if err := q.QueryRow(ctx, query, userID, start, end, excludeID).Scan(&overlaps); err != nil {
		return false, fmt.Errorf("check leave overlap: %w", err)
	}
	return overlaps, nil
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	cmd, err := q.Exec(ctx, `DELETE FROM leaves WHERE id = $1 AND status = 'Pending'`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOr(ctx, id, leave.ErrLeaveNotEditable)
	}
	return nil
}

// ListApprovedUserIDsOn implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListApprovedUserIDsOn(ctx context.Context, day time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT user_id::text
		FROM leaves
		WHERE status = 'Approved' AND start_date <= $1 AND end_date >= $1
	`

	rows, err := q.Query(ctx, query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// missingOr tells a missing leave apart from a guarded one after an update
// touched no rows.
func (r *leaveRepositoryImpl) missingOr(ctx context.Context, id string, guarded error) error {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM leaves WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return leave.ErrLeaveNotFound
	}
	return guarded
}
