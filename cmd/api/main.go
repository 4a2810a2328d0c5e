package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/config"
	appHTTP "github.com/opsdesk/opsdesk-backend-go/internal/handler/http"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/cron"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/database"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/geo"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/jwt"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/oauth"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/sse"
	"github.com/opsdesk/opsdesk-backend-go/internal/repository/postgresql"
	attendanceService "github.com/opsdesk/opsdesk-backend-go/internal/service/attendance"
	serviceAuth "github.com/opsdesk/opsdesk-backend-go/internal/service/auth"
	holidayService "github.com/opsdesk/opsdesk-backend-go/internal/service/holiday"
)

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

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	geofence := geo.Geofence{
		Latitude:     cfg.Attendance.OfficeLatitude,
		Longitude:    cfg.Attendance.OfficeLongitude,
		RadiusMeters: cfg.Attendance.RadiusMeters,
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	hub := sse.NewHub()

	authSvc := serviceAuth.NewAuthService(userRepo, refreshTokenRepo, JWTService)
	holidaySvc := holidayService.NewHolidayService(holidayRepo, location)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, holidayRepo, geofence, location, hub)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc, location)
	userHandler := appHTTP.NewUserHandler(userRepo)
	eventsHandler := appHTTP.NewEventsHandler(JWTService, hub)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:         cfg.App.Env,
			FrontendURL: cfg.App.FrontendURL,
		},
		JWTService,
		authHandler,
		attendanceHandler,
		holidayHandler,
		userHandler,
		eventsHandler,
	)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		jobs := cron.NewAttendanceJobs(attendanceRepo, userRepo, holidaySvc, location)
		jobs.RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
