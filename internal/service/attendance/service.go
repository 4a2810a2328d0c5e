package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/attendance"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/holiday"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/export"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/geo"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/sse"
)

type AttendanceServiceImpl struct {
	AttendanceRepository attendance.Repository
	UserRepository       user.Repository
	HolidayRepository    holiday.Repository
	Geofence             geo.Geofence
	Location             *time.Location
	Hub                  *sse.Hub
}

func NewAttendanceService(
	attendanceRepo attendance.Repository,
	userRepo user.Repository,
	holidayRepo holiday.Repository,
	geofence geo.Geofence,
	location *time.Location,
	hub *sse.Hub,
) attendance.Service {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		HolidayRepository:    holidayRepo,
		Geofence:             geofence,
		Location:             location,
		Hub:                  hub,
	}
}

func userIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// localDay truncates t to midnight in the office timezone.
func (a *AttendanceServiceImpl) localDay(t time.Time) time.Time {
	local := t.In(a.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.Location)
}

// CheckIn implements attendance.Service.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if !a.Geofence.Allows(*req.Location.Latitude, *req.Location.Longitude) {
		return attendance.RecordResponse{}, attendance.ErrOutsideOffice
	}

	now := time.Now()
	today := a.localDay(now)

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	var rec attendance.Record
	if existing != nil {
		if existing.CheckIn != nil {
			return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
		}
		rec = *existing
	} else {
		rec = attendance.Record{UserID: userID, Date: today}
	}

	rec.CheckIn = &now
	rec = ApplyBusinessRule(rec, a.Location)

	saved, err := a.AttendanceRepository.Upsert(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	a.Hub.Broadcast(sse.Event{Event: sse.EventAttendanceSync})

	return a.mapRecordToResponse(saved), nil
}

// CheckOut implements attendance.Service.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if !a.Geofence.Allows(*req.Location.Latitude, *req.Location.Longitude) {
		return attendance.RecordResponse{}, attendance.ErrOutsideOffice
	}

	now := time.Now()
	today := a.localDay(now)

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	var rec attendance.Record
	if existing != nil {
		if existing.CheckOut != nil {
			return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
		}
		rec = *existing
	} else {
		// Checking out without a prior check-in still records the event
		rec = attendance.Record{UserID: userID, Date: today}
	}

	rec.CheckOut = &now
	rec = ApplyBusinessRule(rec, a.Location)

	saved, err := a.AttendanceRepository.Upsert(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	a.Hub.Broadcast(sse.Event{Event: sse.EventAttendanceSync})

	return a.mapRecordToResponse(saved), nil
}

// GetMyAttendance implements attendance.Service.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MonthFilter) (attendance.MonthlyAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	filter.UserID = &userID
	return a.monthly(ctx, filter, false)
}

// ListAttendance implements attendance.Service.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.MonthFilter) (attendance.MonthlyAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	return a.monthly(ctx, filter, true)
}

func (a *AttendanceServiceImpl) monthly(ctx context.Context, filter attendance.MonthFilter, excludeSuperAdmin bool) (attendance.MonthlyAttendanceResponse, error) {
	start, end := a.monthWindow(filter.Month)

	records, err := a.AttendanceRepository.ListRange(ctx, start, end, attendance.ListOptions{
		UserID:            filter.UserID,
		ExcludeSuperAdmin: excludeSuperAdmin,
	})
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	holidays, err := a.HolidayRepository.ListRange(ctx, start, end)
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	resp := attendance.MonthlyAttendanceResponse{
		Month:     filter.Month,
		Records:   make([]attendance.RecordResponse, 0, len(records)),
		Summaries: Summarize(records, a.Location),
		Holidays:  make([]attendance.HolidayView, 0, len(holidays)),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, a.mapRecordToResponse(rec))
	}
	for _, h := range holidays {
		resp.Holidays = append(resp.Holidays, attendance.HolidayView{
			ID:    h.ID,
			Label: h.Label,
			Date:  h.Date.In(a.Location).Format("2006-01-02"),
		})
	}

	return resp, nil
}

// monthWindow returns the inclusive [first midnight, last midnight] day
// range of a "YYYY-MM" month in the office timezone.
func (a *AttendanceServiceImpl) monthWindow(month string) (time.Time, time.Time) {
	parsed, _ := time.Parse("2006-01", month) // validated upstream
	start := time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, a.Location)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// AdminSave implements attendance.Service.
func (a *AttendanceServiceImpl) AdminSave(ctx context.Context, req attendance.AdminSaveRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	adminID, err := userIDFromClaims(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	subject, err := a.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if subject.Role == user.RoleSuperAdmin {
		return attendance.RecordResponse{}, attendance.ErrSuperAdminSubject
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, a.Location)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	rec := attendance.Record{UserID: req.UserID, Date: date}

	// An id-addressed save rewrites that row in place, even when the date
	// changes; creates go through the unique (user_id, date) upsert.
	byID := req.ID != ""
	if byID {
		existing, err := a.AttendanceRepository.GetByID(ctx, req.ID)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		rec = existing
		rec.UserID = req.UserID
		rec.Date = date
	}

	rec.CheckIn, err = a.parseTimestamp(req.CheckIn, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	rec.CheckOut, err = a.parseTimestamp(req.CheckOut, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec = ApplyBusinessRule(rec, a.Location)
	rec.UpdatedBy = &adminID

	var saved attendance.Record
	if byID {
		saved, err = a.AttendanceRepository.Update(ctx, rec)
	} else {
		saved, err = a.AttendanceRepository.Upsert(ctx, rec)
	}
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	a.Hub.Broadcast(sse.Event{Event: sse.EventAttendanceSync})

	return a.mapRecordToResponse(saved), nil
}

// parseTimestamp accepts either a full RFC 3339 timestamp or a bare "15:04"
// wall-clock time interpreted on the record's date in the office timezone.
func (a *AttendanceServiceImpl) parseTimestamp(value *string, date time.Time) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, *value); err == nil {
		return &t, nil
	}

	clock, err := time.Parse("15:04", *value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse timestamp %q: %w", *value, err)
	}
	t := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, a.Location)
	return &t, nil
}

// ExportCSV implements attendance.Service.
func (a *AttendanceServiceImpl) ExportCSV(ctx context.Context, filter attendance.ExportFilter) ([]byte, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	start, _ := time.ParseInLocation("2006-01-02", filter.StartDate, a.Location)
	end, _ := time.ParseInLocation("2006-01-02", filter.EndDate, a.Location)

	records, err := a.AttendanceRepository.ListRange(ctx, start, end, attendance.ListOptions{
		ExcludeSuperAdmin: true,
	})
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Date", "Name", "Email", "Check In", "Check Out", "Check In Status", "Check Out Status", "Total Hours", "State"},
	}
	for _, rec := range records {
		name, email := "", ""
		if rec.UserName != nil {
			name = *rec.UserName
		}
		if rec.UserEmail != nil {
			email = *rec.UserEmail
		}
		dataset.Rows = append(dataset.Rows, []string{
			rec.Date.In(a.Location).Format("2006-01-02"),
			name,
			email,
			a.formatClock(rec.CheckIn),
			a.formatClock(rec.CheckOut),
			string(rec.CheckInStatus),
			string(rec.CheckOutStatus),
			fmt.Sprintf("%.2f", rec.TotalHours),
			string(rec.State),
		})
	}

	return export.RenderCSV(dataset)
}

func (a *AttendanceServiceImpl) formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(a.Location).Format("15:04")
}

func (a *AttendanceServiceImpl) mapRecordToResponse(rec attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:             rec.ID,
		UserID:         rec.UserID,
		UserName:       rec.UserName,
		Date:           rec.Date.In(a.Location).Format("2006-01-02"),
		CheckInStatus:  string(rec.CheckInStatus),
		CheckOutStatus: string(rec.CheckOutStatus),
		TotalHours:     rec.TotalHours,
		State:          string(rec.State),
		UpdatedBy:      rec.UpdatedBy,
	}
	if rec.CheckIn != nil {
		formatted := rec.CheckIn.In(a.Location).Format(time.RFC3339)
		resp.CheckIn = &formatted
	}
	if rec.CheckOut != nil {
		formatted := rec.CheckOut.In(a.Location).Format(time.RFC3339)
		resp.CheckOut = &formatted
	}
	return resp
}
