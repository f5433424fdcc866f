package attendance

import "errors"

var (
	// Clock errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNotAuthorized      = errors.New("not authorized to manage this attendance record")
	ErrInvalidAction      = errors.New("action must be Approve or Reject")
	ErrNoChanges          = errors.New("no fields to update")
	ErrDuplicateDate      = errors.New("an attendance record already exists for this date")
)
