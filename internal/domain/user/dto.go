package user

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/webwhiz/hrms-backend/internal/pkg/validator"
)

// UserRef is a lightweight id/name pair used in nested responses.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoleRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Contact         *string    `json:"contact,omitempty"`
	DateOfJoining   *string    `json:"dateOfJoining,omitempty"`
	Role            *RoleRef   `json:"role,omitempty"`
	ReportBy        []UserRef  `json:"reportBy"`
	Status          string     `json:"status"`
	SickLeave       float64    `json:"sickLeave"`
	PaidLeave       float64    `json:"paidLeave"`
	AvailableLeaves float64    `json:"availableLeaves"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	DeletedAt       *time.Time `json:"deletedAt,omitempty"`
}

// NewUserResponse builds the response for u. names resolves reportBy ids;
// ids missing from names are returned with an empty name.
func NewUserResponse(u User, names map[string]string) UserResponse {
	resp := UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Contact:         u.Contact,
		ReportBy:        make([]UserRef, 0, len(u.ReportBy)),
		Status:          string(u.Status),
		SickLeave:       u.SickLeave.InexactFloat64(),
		PaidLeave:       u.PaidLeave.InexactFloat64(),
		AvailableLeaves: u.AvailableLeaves().InexactFloat64(),
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
		DeletedAt:       u.DeletedAt,
	}
	if u.DateOfJoining != nil {
		d := u.DateOfJoining.Format("2006-01-02")
		resp.DateOfJoining = &d
	}
	if u.RoleID != nil {
		resp.Role = &RoleRef{ID: *u.RoleID, Name: u.RoleName}
	}
	for _, id := range u.ReportBy {
		resp.ReportBy = append(resp.ReportBy, UserRef{ID: id, Name: names[id]})
	}
	return resp
}

// ListFilter narrows user listings. A zero filter lists every active user.
type ListFilter struct {
	UserIDs         []string
	All             bool
	ExcludeID       string
	IncludeInactive bool
}

// BalanceCategory selects the counter a leave deduction applies to.
type BalanceCategory string

const (
	BalanceSick BalanceCategory = "sick"
	BalancePaid BalanceCategory = "paid"
)

// UpdateUserRequest represents request to update user
type UpdateUserRequest struct {
	ID            string    `json:"-"`
	Name          *string   `json:"name,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Contact       *string   `json:"contact,omitempty"`
	DateOfJoining *string   `json:"dateOfJoining,omitempty"`
	SickLeave     *float64  `json:"sickLeave,omitempty"`
	PaidLeave     *float64  `json:"paidLeave,omitempty"`
	ReportBy      *[]string `json:"reportBy,omitempty"`
	Role          *string   `json:"role,omitempty"`

	// Resolved by the service from Role.
	RoleID *string `json:"-"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && len(strings.TrimSpace(*r.Name)) < 3 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must be at least 3 characters",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.DateOfJoining != nil {
		if _, ok := validator.IsValidDate(*r.DateOfJoining); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dateOfJoining",
				Message: "dateOfJoining must be in YYYY-MM-DD format",
			})
		}
	}

	if r.SickLeave != nil && !validator.IsValidLeaveBalance(*r.SickLeave) {
		errs = append(errs, validator.ValidationError{
			Field:   "sickLeave",
			Message: "sickLeave must be a non-negative multiple of 0.5",
		})
	}

	if r.PaidLeave != nil && !validator.IsValidLeaveBalance(*r.PaidLeave) {
		errs = append(errs, validator.ValidationError{
			Field:   "paidLeave",
			Message: "paidLeave must be a non-negative multiple of 0.5",
		})
	}

	if r.ReportBy != nil {
		for _, id := range *r.ReportBy {
			if !validator.IsValidUUID(id) {
				errs = append(errs, validator.ValidationError{
					Field:   "reportBy",
					Message: "reportBy must contain valid user ids",
				})
				break
			}
		}
	}

	if r.Role != nil && validator.IsEmpty(*r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role cannot be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// HasChanges reports whether any field is set.
func (r *UpdateUserRequest) HasChanges() bool {
	return r.Name != nil || r.Email != nil || r.Contact != nil || r.DateOfJoining != nil ||
		r.SickLeave != nil || r.PaidLeave != nil || r.ReportBy != nil || r.RoleID != nil
}

// Balance converts a validated float balance.
func Balance(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

type UpdatePasswordRequest struct {
	UserID      string `json:"-"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (r *UpdatePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OldPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "oldPassword",
			Message: "oldPassword is required",
		})
	}

	if validator.IsEmpty(r.NewPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "newPassword",
			Message: "newPassword is required",
		})
	} else if len(r.NewPassword) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "newPassword",
			Message: "newPassword must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateStatusRequest struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "userId",
			Message: "userId must be a valid id",
		})
	}

	if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be Active or Inactive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
