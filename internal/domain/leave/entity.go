package leave

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
)

type Type string

const (
	TypePaid   Type = "Paid"
	TypeSick   Type = "Sick"
	TypeUnpaid Type = "Unpaid"
)

func (t Type) Valid() bool {
	return t == TypePaid || t == TypeSick || t == TypeUnpaid
}

// BalanceCategory returns the counter an approved leave of this type
// consumes. Unpaid leave consumes nothing.
func (t Type) BalanceCategory() (user.BalanceCategory, bool) {
	switch t {
	case TypePaid:
		return user.BalancePaid, true
	case TypeSick:
		return user.BalanceSick, true
	default:
		return "", false
	}
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// IsDecision reports whether s is a valid target of a status transition.
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

type Leave struct {
	ID           string
	UserID       string
	StartDate    time.Time
	EndDate      time.Time
	Reason       string
	LeaveType    Type
	Status       Status
	LeaveDetails Details
	Attachment   *string

	DecidedBy *string
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	UserName *string
}

func (l *Leave) IsPending() bool {
	return l.Status == StatusPending
}

// TotalDays is the number of day-equivalents the leave consumes.
func (l *Leave) TotalDays() decimal.Decimal {
	return l.LeaveDetails.DayEquivalents()
}
