package role

import (
	"time"

	"github.com/webwhiz/hrms-backend/internal/pkg/validator"
)

type CreateRoleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func (r *CreateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must be at most 50 characters",
		})
	}

	for _, p := range r.Permissions {
		if validator.IsEmpty(p) {
			errs = append(errs, validator.ValidationError{
				Field:   "permissions",
				Message: "permissions cannot contain empty values",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RoleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewRoleResponse(r Role) RoleResponse {
	perms := r.Permissions
	if perms == nil {
		perms = []string{}
	}
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: perms,
		CreatedAt:   r.CreatedAt,
	}
}
