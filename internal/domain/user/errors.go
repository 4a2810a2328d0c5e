package user

import "errors"

// User domain errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrAdminAccessRequired = errors.New("admin access required")
	ErrHRAccessRequired    = errors.New("HR access required")
)
