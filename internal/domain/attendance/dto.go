package attendance

import (
	"time"

	"github.com/webwhiz/hrms-backend/internal/pkg/validator"
)

// Location is the optional geo position sent with a clock event.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ClockRequest is the body of check-in and check-out.
type ClockRequest struct {
	UserID   string    `json:"userId"`
	IP       *string   `json:"ip,omitempty"`
	Location *Location `json:"location,omitempty"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "userId",
			Message: "userId is required",
		})
	} else if !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "userId",
			Message: "userId must be a valid id",
		})
	}

	if r.Location != nil {
		if r.Location.Latitude < -90 || r.Location.Latitude > 90 {
			errs = append(errs, validator.ValidationError{
				Field:   "location.latitude",
				Message: "latitude must be between -90 and 90",
			})
		}
		if r.Location.Longitude < -180 || r.Location.Longitude > 180 {
			errs = append(errs, validator.ValidationError{
				Field:   "location.longitude",
				Message: "longitude must be between -180 and 180",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest corrects a record. Times are RFC3339.
type UpdateAttendanceRequest struct {
	ID        string  `json:"-"`
	EditorID  string  `json:"-"`
	Date      *string `json:"date,omitempty"`
	ClocksIn  *string `json:"clocksIn,omitempty"`
	ClocksOut *string `json:"clocksOut,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	if r.Date == nil && r.ClocksIn == nil && r.ClocksOut == nil {
		return ErrNoChanges
	}

	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.ClocksIn != nil {
		if _, ok := validator.IsValidDateTime(*r.ClocksIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clocksIn",
				Message: "clocksIn must be an RFC3339 timestamp",
			})
		}
	}

	if r.ClocksOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ClocksOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clocksOut",
				Message: "clocksOut must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApprovalRequest struct {
	AttendanceID string `json:"attendanceId"`
	ManagerID    string `json:"-"`
	Action       string `json:"action"`
}

func (r *ApprovalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendanceId",
			Message: "attendanceId is required",
		})
	}

	if validator.IsEmpty(r.Action) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	if _, ok := Action(r.Action).Status(); !ok {
		return ErrInvalidAction
	}

	return nil
}

type AttendanceResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	UserName   *string    `json:"userName,omitempty"`
	Date       string     `json:"date"`
	ClocksIn   *time.Time `json:"clocksIn,omitempty"`
	ClocksOut  *time.Time `json:"clocksOut,omitempty"`
	TotalHours float64    `json:"totalHours"`
	Status     string     `json:"status"`
	CheckInIP  *string    `json:"checkInIp,omitempty"`
	CheckOutIP *string    `json:"checkOutIp,omitempty"`
	Location   *Location  `json:"location,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		UserName:   a.UserName,
		Date:       a.Date.Format("2006-01-02"),
		ClocksIn:   a.ClocksIn,
		ClocksOut:  a.ClocksOut,
		TotalHours: a.TotalHours.InexactFloat64(),
		Status:     string(a.Status),
		CheckInIP:  a.CheckInIP,
		CheckOutIP: a.CheckOutIP,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if a.HasLocation() {
		resp.Location = &Location{Latitude: *a.Latitude, Longitude: *a.Longitude}
	}
	return resp
}

func NewAttendanceResponses(records []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		out = append(out, NewAttendanceResponse(a))
	}
	return out
}

// DecisionEvent is published after an edited record is approved or rejected.
type DecisionEvent struct {
	AttendanceID string    `json:"attendanceId"`
	UserID       string    `json:"userId"`
	Status       string    `json:"status"`
	DecidedBy    string    `json:"decidedBy"`
	DecidedAt    time.Time `json:"decidedAt"`
}
