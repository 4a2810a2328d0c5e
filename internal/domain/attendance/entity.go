package attendance

import (
	"time"
)

// CheckInStatus classifies the morning side of a record.
type CheckInStatus string

const (
	CheckInPresent CheckInStatus = "present"
	CheckInLate    CheckInStatus = "late"
	CheckInHalfDay CheckInStatus = "half_day"
	CheckInAbsent  CheckInStatus = "absent"
)

// CheckOutStatus classifies the evening side of a record.
type CheckOutStatus string

const (
	CheckOutPresent CheckOutStatus = "present"
	CheckOutEarly   CheckOutStatus = "early"
	CheckOutAbsent  CheckOutStatus = "absent"
)

// RecordState is the aggregate classification derived from which timestamps
// are present. It is recomputed on every mutation, never left stale.
type RecordState string

const (
	StateCheckedInOnly  RecordState = "checked_in_only"
	StateCheckedOutOnly RecordState = "checked_out_only"
	StateCompleteEntry  RecordState = "complete_entry"
	StateAbsent         RecordState = "absent"
)

// Record is one attendance row per (user, calendar day). Date is normalized
// to midnight in the configured attendance timezone; the unique
// (user_id, date) index is the storage-level guarantee that at most one row
// exists per user per day.
type Record struct {
	ID             string
	UserID         string
	Date           time.Time
	CheckIn        *time.Time
	CheckOut       *time.Time
	CheckInStatus  CheckInStatus
	CheckOutStatus CheckOutStatus
	TotalHours     float64
	State          RecordState
	UpdatedBy      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined from users for list and export views
	UserName  *string
	UserEmail *string
	UserRole  *string
}
