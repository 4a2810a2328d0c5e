package holiday

import "errors"

// Holiday domain errors
var (
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrDuplicateDate   = errors.New("a holiday already exists on that date")
)
