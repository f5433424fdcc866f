package project

import (
	"time"

	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/pkg/validator"
)

type CreateProjectRequest struct {
	Title        string   `json:"title"`
	Description  *string  `json:"description,omitempty"`
	Category     string   `json:"category"`
	DateAssigned *string  `json:"dateAssigned,omitempty"`
	DueDate      string   `json:"dueDate"`
	Status       *string  `json:"status,omitempty"`
	ManagerID    *string  `json:"manager,omitempty"`
	Team         []string `json:"team,omitempty"`
}

func (r *CreateProjectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if validator.IsEmpty(r.Category) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category is required",
		})
	}

	if r.DateAssigned != nil {
		if _, ok := validator.IsValidDate(*r.DateAssigned); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dateAssigned",
				Message: "dateAssigned must be in YYYY-MM-DD format",
			})
		}
	}

	if validator.IsEmpty(r.DueDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "dueDate",
			Message: "dueDate is required",
		})
	} else if _, ok := validator.IsValidDate(r.DueDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "dueDate",
			Message: "dueDate must be in YYYY-MM-DD format",
		})
	}

	if r.Status != nil && !Status(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is not a valid project status",
		})
	}

	if r.ManagerID != nil && !validator.IsValidUUID(*r.ManagerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "manager",
			Message: "manager must be a valid user id",
		})
	}

	for _, id := range r.Team {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "team",
				Message: "team must contain valid user ids",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateProjectRequest struct {
	ID          string    `json:"-"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`
	Status      *string   `json:"status,omitempty"`
	ManagerID   *string   `json:"manager,omitempty"`
	Team        *[]string `json:"team,omitempty"`
}

func (r *UpdateProjectRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title cannot be empty",
		})
	}

	if r.Category != nil && validator.IsEmpty(*r.Category) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category cannot be empty",
		})
	}

	if r.DueDate != nil {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dueDate",
				Message: "dueDate must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Status != nil && !Status(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is not a valid project status",
		})
	}

	if r.ManagerID != nil && !validator.IsValidUUID(*r.ManagerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "manager",
			Message: "manager must be a valid user id",
		})
	}

	if r.Team != nil {
		for _, id := range *r.Team {
			if !validator.IsValidUUID(id) {
				errs = append(errs, validator.ValidationError{
					Field:   "team",
					Message: "team must contain valid user ids",
				})
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProjectResponse struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    *string        `json:"description,omitempty"`
	Category       string         `json:"category"`
	DateAssigned   string         `json:"dateAssigned"`
	DueDate        string         `json:"dueDate"`
	Status         string         `json:"status"`
	Manager        *user.UserRef  `json:"manager,omitempty"`
	Team           []user.UserRef `json:"team"`
	TotalTasks     int            `json:"totalTasks"`
	CompletedTasks int            `json:"completedTasks"`
	Progress       int            `json:"progress"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// NewProjectResponse resolves member names through names.
func NewProjectResponse(p Project, counts TaskCounts, names map[string]string) ProjectResponse {
	resp := ProjectResponse{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		Category:       p.Category,
		DateAssigned:   p.DateAssigned.Format("2006-01-02"),
		DueDate:        p.DueDate.Format("2006-01-02"),
		Status:         string(p.Status),
		Team:           make([]user.UserRef, 0, len(p.Team)),
		TotalTasks:     counts.Total,
		CompletedTasks: counts.Completed,
		Progress:       counts.Progress(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.ManagerID != nil {
		resp.Manager = &user.UserRef{ID: *p.ManagerID, Name: names[*p.ManagerID]}
	}
	for _, id := range p.Team {
		resp.Team = append(resp.Team, user.UserRef{ID: id, Name: names[id]})
	}
	return resp
}
