package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
	ErrOutsideOffice     = errors.New("denied: you are not in the office")

	// General errors
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrDuplicateRecord   = errors.New("an attendance record already exists for this user and date")
	ErrSuperAdminSubject = errors.New("attendance cannot be recorded for a super admin")
)
