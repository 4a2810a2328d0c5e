package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/attendance"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/holiday"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
)

type AttendanceJobs struct {
	attendanceRepo attendance.Repository
	userRepo       user.Repository
	holidaySvc     holiday.Service
	location       *time.Location
}

func NewAttendanceJobs(
	attendanceRepo attendance.Repository,
	userRepo user.Repository,
	holidaySvc holiday.Service,
	location *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		holidaySvc:     holidaySvc,
		location:       location,
	}
}

// RegisterJobs wires the absence marker into the in-process scheduler. The
// hourly tick is gated to local midnight so the job effectively runs once a
// day shortly after the day rolls over.
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absentees", 1*time.Hour, func(ctx context.Context) error {
		if time.Now().In(j.location).Hour() != 0 {
			return nil
		}
		return j.MarkAbsentees(ctx)
	})
}

// MarkAbsentees inserts an "absent" placeholder for every non-superAdmin user
// who has no record for the previous local calendar day. Sundays and declared
// holidays are skipped entirely. The pass is best effort and unordered:
// existing rows are never touched and individual failures do not abort it.
func (j *AttendanceJobs) MarkAbsentees(ctx context.Context) error {
	nowLocal := time.Now().In(j.location)
	yesterday := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, j.location).AddDate(0, 0, -1)
	return j.markAbsenteesFor(ctx, yesterday)
}

func (j *AttendanceJobs) markAbsenteesFor(ctx context.Context, yesterday time.Time) error {
	slog.Info("Cron: Starting mark absentees job", "date", yesterday.Format("2006-01-02"))

	if yesterday.Weekday() == time.Sunday {
		slog.Info("Cron: Skipping absence marking, day is a Sunday", "date", yesterday.Format("2006-01-02"))
		return nil
	}

	isHoliday, err := j.holidaySvc.IsHoliday(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to check holiday: %w", err)
	}
	if isHoliday {
		slog.Info("Cron: Skipping absence marking, day is a holiday", "date", yesterday.Format("2006-01-02"))
		return nil
	}

	users, err := j.userRepo.List(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	absences := make([]attendance.Record, 0, len(users))
	for _, usr := range users {
		absences = append(absences, attendance.Record{
			UserID:         usr.ID,
			Date:           yesterday,
			CheckInStatus:  attendance.CheckInAbsent,
			CheckOutStatus: attendance.CheckOutAbsent,
			State:          attendance.StateAbsent,
		})
	}

	inserted, err := j.attendanceRepo.BulkInsertAbsences(ctx, absences)
	if err != nil {
		return fmt.Errorf("failed to bulk insert absences: %w", err)
	}

	slog.Info("Cron: Marked absentees", "date", yesterday.Format("2006-01-02"), "inserted", inserted, "users", len(users))
	return nil
}
