package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/config"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/cron"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/database"
	"github.com/opsdesk/opsdesk-backend-go/internal/repository/postgresql"
	holidayService "github.com/opsdesk/opsdesk-backend-go/internal/service/holiday"
)

// The worker runs the absence marker exactly once and exits. An external
// scheduler (systemd timer, Kubernetes CronJob) owns the daily cadence.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	location, err := time.LoadLocation(cfg.Attendance.Timezone)
	if err != nil {
		log.Fatal("Invalid attendance timezone: ", cfg.Attendance.Timezone)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	holidaySvc := holidayService.NewHolidayService(holidayRepo, location)

	jobs := cron.NewAttendanceJobs(attendanceRepo, userRepo, holidaySvc, location)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := jobs.MarkAbsentees(ctx); err != nil {
		log.Fatal("Mark absentees failed: ", err)
	}
}
