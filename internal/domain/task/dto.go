package task

import (
	"io"
	"time"

	"github.com/webwhiz/hrms-backend/internal/pkg/validator"
)

const (
	MaxAttachments    = 10
	MaxAttachmentSize = 25 << 20
)

// Upload is one file received with a create or update request.
type Upload struct {
	File        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

type CreateTaskRequest struct {
	Title        string   `json:"title"`
	Description  *string  `json:"description,omitempty"`
	DateAssigned *string  `json:"dateAssigned,omitempty"`
	DateDue      *string  `json:"dateDue,omitempty"`
	SectionID    string   `json:"sectionId"`
	Team         []string `json:"team"`
	ProjectID    string   `json:"projectId"`
	Priority     *string  `json:"priority,omitempty"`
	Comments     *string  `json:"comments,omitempty"`

	Uploads []Upload `json:"-"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if validator.IsEmpty(r.SectionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "sectionId",
			Message: "sectionId is required",
		})
	}

	if !validator.IsValidUUID(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "projectId",
			Message: "projectId must be a valid project id",
		})
	}

	if len(r.Team) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "team",
			Message: "team must contain at least one user",
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

	if r.DateAssigned != nil {
		if _, ok := validator.IsValidDate(*r.DateAssigned); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dateAssigned",
				Message: "dateAssigned must be in YYYY-MM-DD format",
			})
		}
	}

	if r.DateDue != nil {
		if _, ok := validator.IsValidDate(*r.DateDue); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dateDue",
				Message: "dateDue must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Priority != nil && !Priority(*r.Priority).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be High, Medium, Low or Urgent",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return validateUploads(r.Uploads)
}

type UpdateTaskRequest struct {
	ID          string    `json:"-"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	DateDue     *string   `json:"dateDue,omitempty"`
	SectionID   *string   `json:"sectionId,omitempty"`
	Team        *[]string `json:"team,omitempty"`
	Priority    *string   `json:"priority,omitempty"`
	Comments    *string   `json:"comments,omitempty"`

	Uploads []Upload `json:"-"`
}

func (r *UpdateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title cannot be empty",
		})
	}

	if r.SectionID != nil && validator.IsEmpty(*r.SectionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "sectionId",
			Message: "sectionId cannot be empty",
		})
	}

	if r.DateDue != nil {
		if _, ok := validator.IsValidDate(*r.DateDue); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dateDue",
				Message: "dateDue must be in YYYY-MM-DD format",
			})
		}
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

	if r.Priority != nil && !Priority(*r.Priority).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be High, Medium, Low or Urgent",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return validateUploads(r.Uploads)
}

var allowedContentTypes = []string{
	"image/jpeg",
	"image/png",
	"application/pdf",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

func validateUploads(uploads []Upload) error {
	if len(uploads) > MaxAttachments {
		return ErrTooManyAttachments
	}
	for _, u := range uploads {
		if !validator.IsInSlice(u.ContentType, allowedContentTypes) {
			return ErrFileTypeNotAllowed
		}
		if u.Size > MaxAttachmentSize {
			return ErrFileSizeExceeds
		}
	}
	return nil
}

type AttachmentResponse struct {
	ID           string `json:"id"`
	FileURL      string `json:"fileUrl"`
	OriginalName string `json:"originalName"`
}

type TaskResponse struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Description  *string              `json:"description,omitempty"`
	DateAssigned string               `json:"dateAssigned"`
	DateDue      *string              `json:"dateDue,omitempty"`
	SectionID    string               `json:"sectionId"`
	Team         []string             `json:"team"`
	ProjectID    string               `json:"projectId"`
	Priority     string               `json:"priority"`
	Attachments  []AttachmentResponse `json:"attachments"`
	Comments     *string              `json:"comments,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// NewTaskResponse resolves attachment paths to URLs with fileURL.
func NewTaskResponse(t Task, fileURL func(path string) string) TaskResponse {
	resp := TaskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		DateAssigned: t.DateAssigned.Format("2006-01-02"),
		SectionID:    t.SectionID,
		Team:         t.Team,
		ProjectID:    t.ProjectID,
		Priority:     string(t.Priority),
		Attachments:  make([]AttachmentResponse, 0, len(t.Attachments)),
		Comments:     t.Comments,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if resp.Team == nil {
		resp.Team = []string{}
	}
	if t.DateDue != nil {
		d := t.DateDue.Format("2006-01-02")
		resp.DateDue = &d
	}
	for _, a := range t.Attachments {
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			ID:           a.ID,
			FileURL:      fileURL(a.Path),
			OriginalName: a.OriginalName,
		})
	}
	return resp
}
