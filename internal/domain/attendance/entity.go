package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent    Status = "Present"
	StatusAbsent     Status = "Absent"
	StatusLeave      Status = "Leave"
	StatusInApproval Status = "In Approval"
)

// Action is a manager decision on an edited record.
type Action string

const (
	ActionApprove Action = "Approve"
	ActionReject  Action = "Reject"
)

// Status returns the record status the action results in.
func (a Action) Status() (Status, bool) {
	switch a {
	case ActionApprove:
		return StatusPresent, true
	case ActionReject:
		return StatusAbsent, true
	default:
		return "", false
	}
}

type Attendance struct {
	ID         string
	UserID     string
	Date       time.Time
	ClocksIn   *time.Time
	ClocksOut  *time.Time
	TotalHours decimal.Decimal
	Status     Status

	CheckInIP  *string
	CheckOutIP *string
	Latitude   *float64
	Longitude  *float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	UserName *string
}

// IsOpen reports whether the record has a clock-in without a clock-out.
func (a *Attendance) IsOpen() bool {
	return a.ClocksIn != nil && a.ClocksOut == nil
}

// HasLocation reports whether check-in coordinates were captured.
func (a *Attendance) HasLocation() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// WorkedHours returns |out - in| in hours rounded to three decimals, or zero
// when either end is missing.
func WorkedHours(in, out *time.Time) decimal.Decimal {
	if in == nil || out == nil {
		return decimal.Zero
	}
	d := out.Sub(*in)
	if d < 0 {
		d = -d
	}
	return decimal.NewFromInt(d.Milliseconds()).
		Div(decimal.NewFromInt(time.Hour.Milliseconds())).
		Round(3)
}

// ReconcileResult summarises one reconciliation sweep.
type ReconcileResult struct {
	Day      time.Time `json:"day"`
	Scanned  int       `json:"scanned"`
	Absent   int       `json:"absent"`
	OnLeave  int       `json:"onLeave"`
	Existing int       `json:"existing"`
	Failed   int       `json:"failed"`
}
