package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/webwhiz/hrms-backend/internal/domain/project"
	"github.com/webwhiz/hrms-backend/internal/pkg/database"
)

type projectRepositoryImpl struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

const projectColumns = `
	p.id, p.title, p.description, p.category, p.date_assigned, p.due_date, p.status,
	p.manager_id, p.team::text[], p.created_at, p.updated_at, m.name
`

func scanProject(row pgx.Row) (project.Project, error) {
	var p project.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Category, &p.DateAssigned, &p.DueDate, &p.Status,
		&p.ManagerID, &p.Team, &p.CreatedAt, &p.UpdatedAt, &p.ManagerName,
	)
	if p.Team == nil {
		p.Team = []string{}
	}
	return p, err
}

// Create implements project.ProjectRepository.
func (r *projectRepositoryImpl) Create(ctx context.Context, p project.Project) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO projects (
			id, title, description, category, date_assigned, due_date, status,
			manager_id, team, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8::uuid[], NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	p.Team = nonNilIDs(p.Team)
	err := q.QueryRow(ctx, query,
		p.Title, p.Description, p.Category, p.DateAssigned, p.DueDate, p.Status, p.ManagerID, p.Team,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return project.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

// GetByID implements project.ProjectRepository.
func (r *projectRepositoryImpl) GetByID(ctx context.Context, id string) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + projectColumns + `
		FROM projects p
		LEFT JOIN users m ON m.id = p.manager_id
		WHERE p.id = $1
	`

	p, err := scanProject(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, err
	}
	return p, nil
}

// List implements project.ProjectRepository.
func (r *projectRepositoryImpl) List(ctx context.Context, filter project.ListFilter) ([]project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + projectColumns + `
		FROM projects p
		LEFT JOIN users m ON m.id = p.manager_id`
	var args []interface{}
	if filter.MemberID != "" {
		query += ` WHERE p.manager_id = $1 OR $1 = ANY(p.team)`
		args = append(args, filter.MemberID)
	}
	query += ` ORDER BY p.due_date ASC, p.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Update implements project.ProjectRepository.
func (r *projectRepositoryImpl) Update(ctx context.Context, req project.UpdateProjectRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		if *req.Description == "" {
			updates["description"] = nil
		} else {
			updates["description"] = *req.Description
		}
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.DueDate != nil {
		parsed, _ := time.Parse("2006-01-02", *req.DueDate)
		updates["due_date"] = parsed
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			updates["manager_id"] = nil
		} else {
			updates["manager_id"] = *req.ManagerID
		}
	}
	if req.Team != nil {
		updates["team"] = nonNilIDs(*req.Team)
	}

	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		if col == "team" {
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d::uuid[]", col, i))
		} else {
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		}
		args = append(args, val)
		i++
	}
	args = append(args, req.ID)

	sql := fmt.Sprintf("UPDATE projects SET %s WHERE id = $%d", strings.Join(setClauses, ", "), i)

	cmd, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return project.ErrProjectNotFound
	}
	return nil
}

// Delete implements project.ProjectRepository.
func (r *projectRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	cmd, err := q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return project.ErrProjectNotFound
	}
	return nil
}

// CountTasks implements project.ProjectRepository.
func (r *projectRepositoryImpl) CountTasks(ctx context.Context, projectIDs []string, completedSection string) (map[string]project.TaskCounts, error) {
	counts := make(map[string]project.TaskCounts, len(projectIDs))
	if len(projectIDs) == 0 {
		return counts, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT project_id::text, COUNT(*), COUNT(*) FILTER (WHERE section_id = $2)
		FROM tasks
		WHERE project_id = ANY($1::uuid[])
		GROUP BY project_id
	`

	rows, err := q.Query(ctx, query, projectIDs, completedSection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var c project.TaskCounts
		if err := rows.Scan(&id, &c.Total, &c.Completed); err != nil {
			return nil, err
		}
		counts[id] = c
	}
	return counts, rows.Err()
}
