package leave

import "errors"

var (
	ErrLeaveNotFound          = errors.New("leave not found")
	ErrInvalidDateRange       = errors.New("start date must not be after end date")
	ErrInvalidStatus          = errors.New("status must be Approved or Rejected")
	ErrLeaveAlreadyProcessed  = errors.New("leave already processed")
	ErrLeaveOverlaps          = errors.New("dates overlap another pending or approved leave")
	ErrInsufficientBalance    = errors.New("insufficient leave balance")
	ErrLeaveNotEditable       = errors.New("only pending leaves can be modified")
	ErrStatusChangeNotAllowed = errors.New("status cannot be changed through an update")
	ErrNotAuthorized          = errors.New("not authorized for this leave")
	ErrFileTypeNotAllowed     = errors.New("attachment type not allowed")
	ErrFileSizeExceeds        = errors.New("attachment exceeds size limit")
)
