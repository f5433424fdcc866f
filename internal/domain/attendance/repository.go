package attendance

import (
	"context"
	"time"
)

// ListFilter narrows attendance listings.
type ListFilter struct {
	All     bool
	UserIDs []string

	// ExcludeFounders drops records owned by Founder-role users.
	ExcludeFounders bool

	From *time.Time
	To   *time.Time
}

type AttendanceRepository interface {
	// Create inserts a record. A second record for the same user and date
	// fails with ErrAlreadyCheckedIn.
	Create(ctx context.Context, a Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (Attendance, error)
	List(ctx context.Context, filter ListFilter) ([]Attendance, error)
	Update(ctx context.Context, a Attendance) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error

	// InsertIfAbsent writes a record only when none exists for the same user
	// and date. It reports whether a row was inserted.
	InsertIfAbsent(ctx context.Context, a Attendance) (bool, error)
}
