package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/nimbus-hr/timesheet-backend-go/internal/handler/http/middleware"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	timesheetHandler TimesheetHandler,
	projectHandler ProjectHandler,
	stopwatchHandler StopwatchHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timesheet-nimbus"),
		slog.String("version", "v1.0.0"),
		slog.String("env", os.Getenv("APP_ENV")),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/timesheets", func(r chi.Router) {
				r.Get("/", timesheetHandler.ListMy)
				r.Post("/", timesheetHandler.Create)
				r.Post("/submit", timesheetHandler.SubmitWeek)
				r.Get("/weeks/{weekStart}", timesheetHandler.GetWeeklyView)

				r.Route("/{id}", func(r chi.Router) {
					r.Patch("/", timesheetHandler.Update)
					r.Delete("/", timesheetHandler.Delete)
					r.Post("/reopen", timesheetHandler.Reopen)

					// Reviewer only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireReviewer)
						r.Post("/approve", timesheetHandler.Approve)
						r.Post("/reject", timesheetHandler.Reject)
					})
				})
			})

			r.Route("/stopwatch", func(r chi.Router) {
				r.Post("/start", stopwatchHandler.Start)
				r.Get("/", stopwatchHandler.Status)
				r.Post("/stop", stopwatchHandler.Stop)
				r.Delete("/", stopwatchHandler.Discard)
			})

			r.Get("/projects", projectHandler.ListSelectable)
		})
	})
	return r
}
