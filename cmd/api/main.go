package main

import (
	"fmt"
	"net/http"

	"github.com/nimbus-hr/timesheet-backend-go/internal/config"
	appHTTP "github.com/nimbus-hr/timesheet-backend-go/internal/handler/http"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/database"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/jwt"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/stopwatch"
	"github.com/nimbus-hr/timesheet-backend-go/internal/repository/postgresql"
	timesheetService "github.com/nimbus-hr/timesheet-backend-go/internal/service/timesheet"
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

	entryRepo := postgresql.NewTimesheetEntryRepository(db)
	tenantRepo := postgresql.NewTenantRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	entrySvc := timesheetService.NewEntryService(entryRepo, tenantRepo, projectRepo)
	submissionSvc := timesheetService.NewSubmissionService(db, entryRepo, tenantRepo)
	tracker := stopwatch.NewTracker()

	timesheetHandler := appHTTP.NewTimesheetHandler(entrySvc, submissionSvc)
	projectHandler := appHTTP.NewProjectHandler(projectRepo)
	stopwatchHandler := appHTTP.NewStopwatchHandler(tracker)

	router := appHTTP.NewRouter(
		JWTService,
		timesheetHandler,
		projectHandler,
		stopwatchHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
