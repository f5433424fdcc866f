package leave

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/webwhiz/hrms-backend/internal/pkg/validator"
)

// Attachment is an uploaded file accompanying a leave request.
type Attachment struct {
	File     io.Reader
	Filename string
	Size     int64
}

// MaxAttachmentSize bounds a leave attachment.
const MaxAttachmentSize = 5 << 20

var allowedAttachmentExts = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"}

// Validate checks the attachment's extension and size.
func (a *Attachment) Validate() error {
	if a == nil {
		return nil
	}
	if !validator.IsInSlice(strings.ToLower(filepath.Ext(a.Filename)), allowedAttachmentExts) {
		return ErrFileTypeNotAllowed
	}
	if a.Size > MaxAttachmentSize {
		return ErrFileSizeExceeds
	}
	return nil
}

type CreateLeaveRequest struct {
	UserID    string            `json:"userId"`
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
	Reason    string            `json:"reason"`
	LeaveType string            `json:"leaveType"`
	HalfDays  map[string]string `json:"halfDays,omitempty"`

	Attachment *Attachment `json:"-"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate is required",
		})
	} else if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate is required",
		})
	} else if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leaveType",
			Message: "leaveType is required",
		})
	} else if !Type(r.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leaveType",
			Message: "leaveType must be Paid, Sick or Unpaid",
		})
	}

	if r.UserID != "" && !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "userId",
			Message: "userId must be a valid id",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	if start.After(end) {
		return ErrInvalidDateRange
	}

	return r.Attachment.Validate()
}

// UpdateLeaveRequest patches a pending leave. Status is rejected when set.
type UpdateLeaveRequest struct {
	ID          string            `json:"-"`
	RequesterID string            `json:"-"`
	StartDate   *string           `json:"startDate,omitempty"`
	EndDate     *string           `json:"endDate,omitempty"`
	Reason      *string           `json:"reason,omitempty"`
	LeaveType   *string           `json:"leaveType,omitempty"`
	HalfDays    map[string]string `json:"halfDays,omitempty"`
	Status      *string           `json:"status,omitempty"`

	Attachment *Attachment `json:"-"`
}

func (r *UpdateLeaveRequest) Validate() error {
	if r.Status != nil {
		return ErrStatusChangeNotAllowed
	}

	var errs validator.ValidationErrors

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "startDate",
				Message: "startDate must be in YYYY-MM-DD format",
			})
		}
	}

	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason cannot be empty",
		})
	}

	if r.LeaveType != nil && !Type(*r.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leaveType",
			Message: "leaveType must be Paid, Sick or Unpaid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return r.Attachment.Validate()
}

type UpdateLeaveStatusRequest struct {
	LeaveID   string `json:"-"`
	DeciderID string `json:"-"`
	Status    string `json:"status"`
}

func (r *UpdateLeaveStatusRequest) Validate() error {
	if validator.IsEmpty(r.Status) {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status is required",
		}}
	}
	if !Status(r.Status).IsDecision() {
		return ErrInvalidStatus
	}
	return nil
}

type LeaveResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"userId"`
	UserName      *string            `json:"userName,omitempty"`
	StartDate     string             `json:"startDate"`
	EndDate       string             `json:"endDate"`
	Reason        string             `json:"reason"`
	LeaveType     string             `json:"leaveType"`
	Status        string             `json:"status"`
	LeaveDetails  map[string]DayType `json:"leaveDetails"`
	TotalDays     float64            `json:"totalDays"`
	AttachmentURL *string            `json:"attachmentUrl,omitempty"`
	DecidedBy     *string            `json:"decidedBy,omitempty"`
	DecidedAt     *time.Time         `json:"decidedAt,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// NewLeaveResponse builds the API view of l. attachmentURL may be nil.
func NewLeaveResponse(l Leave, attachmentURL *string) LeaveResponse {
	return LeaveResponse{
		ID:            l.ID,
		UserID:        l.UserID,
		UserName:      l.UserName,
		StartDate:     l.StartDate.Format(DateLayout),
		EndDate:       l.EndDate.Format(DateLayout),
		Reason:        l.Reason,
		LeaveType:     string(l.LeaveType),
		Status:        string(l.Status),
		LeaveDetails:  l.LeaveDetails,
		TotalDays:     l.TotalDays().InexactFloat64(),
		AttachmentURL: attachmentURL,
		DecidedBy:     l.DecidedBy,
		DecidedAt:     l.DecidedAt,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// StatusChangedEvent is published after a leave decision commits.
type StatusChangedEvent struct {
	LeaveID   string    `json:"leaveId"`
	UserID    string    `json:"userId"`
	LeaveType string    `json:"leaveType"`
	Status    string    `json:"status"`
	Days      string    `json:"days"`
	DecidedBy string    `json:"decidedBy"`
	DecidedAt time.Time `json:"decidedAt"`
}
