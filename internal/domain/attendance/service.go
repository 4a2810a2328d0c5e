package attendance

import (
	"context"
)

// Service defines business logic for attendance operations.
type Service interface {
	// CheckIn processes a geofence-validated check-in for the
	// authenticated user's current local day.
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut processes a geofence-validated check-out and computes total
	// hours for the day.
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// GetMyAttendance returns the authenticated user's records for a month
	// plus the computed summary and holidays in range.
	GetMyAttendance(ctx context.Context, filter MonthFilter) (MonthlyAttendanceResponse, error)

	// ListAttendance returns all users' records for a month (superAdmin
	// subjects excluded) plus per-user summaries and holidays.
	ListAttendance(ctx context.Context, filter MonthFilter) (MonthlyAttendanceResponse, error)

	// AdminSave upserts a record by id or (user_id, date), recomputing
	// statuses, state and hours. superAdmin subjects are rejected.
	AdminSave(ctx context.Context, req AdminSaveRequest) (RecordResponse, error)

	// ExportCSV renders records in [start_date, end_date] as CSV bytes with
	// timestamps formatted in the configured attendance timezone.
	ExportCSV(ctx context.Context, filter ExportFilter) ([]byte, error)
}
