package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserInactive            = errors.New("user is not active")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrInvalidReportBy         = errors.New("reportBy contains unknown users")
	ErrNameTooShort            = errors.New("name must be at least three characters long")
	ErrOldPasswordMismatch     = errors.New("old password does not match")
	ErrPasswordUnchanged       = errors.New("new password must differ from the old one")
	ErrFounderAccessRequired   = errors.New("founder access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrCannotDeleteSelf        = errors.New("cannot delete own account")
	ErrInsufficientBalance     = errors.New("insufficient leave balance")
)
