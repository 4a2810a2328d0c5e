package attendance

import (
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// Location is the device coordinate supplied with a check-in or check-out.
type Location struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type CheckInRequest struct {
	Location *Location `json:"location"`
}

func (r *CheckInRequest) Validate() error {
	return validateLocation(r.Location)
}

type CheckOutRequest struct {
	Location *Location `json:"location"`
}

func (r *CheckOutRequest) Validate() error {
	return validateLocation(r.Location)
}

func validateLocation(loc *Location) error {
	var errs validator.ValidationErrors

	if loc == nil || loc.Latitude == nil || loc.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location with latitude and longitude is required",
		})
		return errs
	}

	if *loc.Latitude < -90 || *loc.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if *loc.Longitude < -180 || *loc.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AdminSaveRequest lets admins fix or backfill a record. ID comes from the
// URL; when it does not resolve to an existing row the save upserts by
// (user_id, date) instead.
type AdminSaveRequest struct {
	ID       string  `json:"-"`
	UserID   string  `json:"user_id"`
	Date     string  `json:"date"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
}

func (r *AdminSaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MonthFilter selects a calendar month of records, optionally for one user.
type MonthFilter struct {
	Month  string // "YYYY-MM"
	UserID *string
}

func (f *MonthFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month is required",
		})
	} else if _, err := time.Parse("2006-01", f.Month); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportFilter selects an inclusive date range for the CSV export.
type ExportFilter struct {
	StartDate string
	EndDate   string
}

func (f *ExportFilter) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(f.StartDate)
	if validator.IsEmpty(f.StartDate) || !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, okEnd := validator.IsValidDate(f.EndDate)
	if validator.IsEmpty(f.EndDate) || !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id"`
	UserName       *string  `json:"user_name,omitempty"`
	Date           string   `json:"date"`
	CheckIn        *string  `json:"check_in,omitempty"`
	CheckOut       *string  `json:"check_out,omitempty"`
	CheckInStatus  string   `json:"check_in_status"`
	CheckOutStatus string   `json:"check_out_status"`
	TotalHours     float64  `json:"total_hours"`
	State          string   `json:"state"`
	UpdatedBy      *string  `json:"updated_by,omitempty"`
}

// UserSummary is derived per (user, period) on every read; it is never
// persisted or cached.
type UserSummary struct {
	UserID              string `json:"user_id"`
	UserName            string `json:"user_name"`
	Present             int    `json:"present"`
	Absent              int    `json:"absent"`
	Late                int    `json:"late"`
	HalfDays            int    `json:"half_days"`
	Early               int    `json:"early"`
	RuleAppliedHalfDays int    `json:"rule_applied_half_days"`
	HalfDayTotal        int    `json:"half_day_total"`
	TotalWorkingDays    int    `json:"total_working_days"`
}

type HolidayView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Date  string `json:"date"`
}

type MonthlyAttendanceResponse struct {
	Month     string           `json:"month"`
	Records   []RecordResponse `json:"records"`
	Summaries []UserSummary    `json:"summaries"`
	Holidays  []HolidayView    `json:"holidays"`
}
