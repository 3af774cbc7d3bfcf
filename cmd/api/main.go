package main

import (
	"fmt"
	"net/http"

	"github.com/fieldhr/attendance-backend-go/internal/config"
	appHTTP "github.com/fieldhr/attendance-backend-go/internal/handler/http"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/cron"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/database"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/lock"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/sse"
	"github.com/fieldhr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/fieldhr/attendance-backend-go/internal/service/attendance"
	centerService "github.com/fieldhr/attendance-backend-go/internal/service/center"
	dashboardService "github.com/fieldhr/attendance-backend-go/internal/service/dashboard"
	leaveService "github.com/fieldhr/attendance-backend-go/internal/service/leave"
	movementService "github.com/fieldhr/attendance-backend-go/internal/service/movement"
	reportService "github.com/fieldhr/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	sessionRepo := postgresql.NewSessionRepository(db)
	centerRepo := postgresql.NewCenterRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	movementRepo := postgresql.NewMovementEventRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)

	hub := sse.NewHub()

	// One keyed mutex across the services: check-in/out, sample
	// classification and leave reviews for the same employee serialize on it.
	locks := lock.NewKeyedMutex()

	movementSvc := movementService.NewMovementService(movementRepo, sessionRepo, hub, locks)
	attendanceSvc := attendanceService.NewAttendanceService(sessionRepo, centerRepo, policyRepo, movementSvc, locks)
	centerSvc := centerService.NewCenterService(centerRepo, policyRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, leaveBalanceRepo, sessionRepo, db, locks)
	dashboardSvc := dashboardService.NewDashboardService(sessionRepo, leaveRequestRepo, movementRepo)
	reportSvc := reportService.NewReportService(sessionRepo, movementRepo)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(sessionRepo, cfg.Tracking.AbsenceMarkHourUTC).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg.App.Env, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Movement:   appHTTP.NewMovementHandler(movementSvc, hub),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Center:     appHTTP.NewCenterHandler(centerSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
