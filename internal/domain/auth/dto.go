package auth

import (
	"strings"

	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/pkg/validator"
)

type RegisterRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Contact       *string  `json:"contact,omitempty"`
	DateOfJoining *string  `json:"dateOfJoining,omitempty"`
	Role          string   `json:"role"`
	ReportBy      []string `json:"reportBy,omitempty"`
	SickLeave     *float64 `json:"sickLeave,omitempty"`
	PaidLeave     *float64 `json:"paidLeave,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if len(strings.TrimSpace(r.Name)) < 3 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must be at least 3 characters",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if len(r.Email) > 254 || !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if r.Contact != nil && !validator.IsEmpty(*r.Contact) && !validator.IsValidPhoneNumber(*r.Contact) {
		errs = append(errs, validator.ValidationError{
			Field:   "contact",
			Message: "contact must be a valid phone number",
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

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	}

	for _, id := range r.ReportBy {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "reportBy",
				Message: "reportBy must contain valid user ids",
			})
			break
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) > 72 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 72 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginResponse struct {
	Token     string            `json:"token"`
	TokenType string            `json:"tokenType"`
	ExpiresIn int64             `json:"expiresIn"`
	User      user.UserResponse `json:"user"`
}
