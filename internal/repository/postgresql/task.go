package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/webwhiz/hrms-backend/internal/domain/task"
	"github.com/webwhiz/hrms-backend/internal/pkg/database"
)

// foreignKeyViolation is the SQLSTATE for foreign_key_violation.
const foreignKeyViolation = "23503"

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

const taskColumns = `
	id, title, description, date_assigned, date_due, section_id, team::text[],
	project_id, priority, attachments, comments, created_at, updated_at
`

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.DateAssigned, &t.DateDue, &t.SectionID, &t.Team,
		&t.ProjectID, &t.Priority, &t.Attachments, &t.Comments, &t.CreatedAt, &t.UpdatedAt,
	)
	if t.Team == nil {
		t.Team = []string{}
	}
	return t, err
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (
			id, title, description, date_assigned, date_due, section_id, team,
			project_id, priority, attachments, comments, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6::uuid[], $7, $8, $9, $10, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	t.Team = nonNilIDs(t.Team)
	err := q.QueryRow(ctx, query,
		t.Title, t.Description, t.DateAssigned, t.DateDue, t.SectionID, t.Team,
		t.ProjectID, t.Priority, t.Attachments, t.Comments,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return task.Task{}, task.ErrProjectDoesNotExist
		}
		return task.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

// GetByID implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanTask(q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}
	return t, nil
}

// List implements task.TaskRepository.
func (r *taskRepositoryImpl) List(ctx context.Context, filter task.ListFilter) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	var where []string
	var args []interface{}
	argIndex := 1

	if filter.ProjectID != "" {
		where = append(where, fmt.Sprintf("project_id = $%d", argIndex))
		args = append(args, filter.ProjectID)
		argIndex++
	}
	if filter.MemberID != "" {
		where = append(where, fmt.Sprintf("$%d = ANY(team)", argIndex))
		args = append(args, filter.MemberID)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update implements task.TaskRepository.
func (r *taskRepositoryImpl) Update(ctx context.Context, t task.Task) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET title = $1, description = $2, date_due = $3, section_id = $4, team = $5::uuid[],
			priority = $6, attachments = $7, comments = $8, updated_at = NOW()
		WHERE id = $9
	`

	cmd, err := q.Exec(ctx, query,
		t.Title, t.Description, t.DateDue, t.SectionID, nonNilIDs(t.Team),
		t.Priority, t.Attachments, t.Comments, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// UpdateAttachments implements task.TaskRepository.
func (r *taskRepositoryImpl) UpdateAttachments(ctx context.Context, id string, attachments task.Attachments) error {
	q := GetQuerier(ctx, r.db)

	cmd, err := q.Exec(ctx, `UPDATE tasks SET attachments = $1, updated_at = NOW() WHERE id = $2`, attachments, id)
	if err != nil {
		return fmt.Errorf("update task attachments: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// Delete implements task.TaskRepository.
func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	cmd, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
