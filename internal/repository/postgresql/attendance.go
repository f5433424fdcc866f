package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/webwhiz/hrms-backend/internal/domain/attendance"
	"github.com/webwhiz/hrms-backend/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.date, a.clocks_in, a.clocks_out, a.total_hours, a.status,
	a.check_in_ip, a.check_out_ip, a.latitude, a.longitude,
	a.created_at, a.updated_at, u.name
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.Date, &att.ClocksIn, &att.ClocksOut, &att.TotalHours, &att.Status,
		&att.CheckInIP, &att.CheckOutIP, &att.Latitude, &att.Longitude,
		&att.CreatedAt, &att.UpdatedAt, &att.UserName,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, user_id, date, clocks_in, clocks_out, total_hours, status,
			check_in_ip, latitude, longitude, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.UserID,
		newAttendance.Date,
		newAttendance.ClocksIn,
		newAttendance.ClocksOut,
		newAttendance.TotalHours,
		newAttendance.Status,
		newAttendance.CheckInIP,
		newAttendance.Latitude,
		newAttendance.Longitude,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return att, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1 AND a.date = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}
	return att, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	var where []string
	var args []interface{}
	argIndex := 1

	if !filter.All {
		where = append(where, fmt.Sprintf("a.user_id = ANY($%d::uuid[])", argIndex))
		args = append(args, nonNilIDs(filter.UserIDs))
		argIndex++
	}
	if filter.ExcludeFounders {
		where = append(where, "COALESCE(LOWER(r.name), '') <> 'founder'")
	}
	if filter.From != nil {
		where = append(where, fmt.Sprintf("a.date >= $%d", argIndex))
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.To != nil {
		where = append(where, fmt.Sprintf("a.date <= $%d", argIndex))
		args = append(args, *filter.To)
	}

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN roles r ON r.id = u.role_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY a.date DESC, u.name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, att)
	}
	return records, rows.Err()
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET date = $1, clocks_in = $2, clocks_out = $3, total_hours = $4, status = $5,
			check_out_ip = $6, updated_at = NOW()
		WHERE id = $7
	`

	cmd, err := q.Exec(ctx, query,
		att.Date, att.ClocksIn, att.ClocksOut, att.TotalHours, att.Status, att.CheckOutIP, att.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrDuplicateDate
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// UpdateStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateStatus(ctx context.Context, id string, status attendance.Status) error {
	q := GetQuerier(ctx, a.db)

	cmd, err := q.Exec(ctx, `UPDATE attendances SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update attendance status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	cmd, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// InsertIfAbsent implements attendance.AttendanceRepository. An existing
// record for the same user and date is never touched.
func (a *attendanceRepository) InsertIfAbsent(ctx context.Context, att attendance.Attendance) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (id, user_id, date, total_hours, status, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id, date) DO NOTHING
	`

	cmd, err := q.Exec(ctx, query, att.UserID, att.Date, att.TotalHours, att.Status)
	if err != nil {
		return false, fmt.Errorf("failed to insert attendance: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}
