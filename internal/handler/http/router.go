package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type Handlers struct {
	Attendance AttendanceHandler
	Movement   MovementHandler
	Leave      LeaveHandler
	Center     CenterHandler
	Dashboard  DashboardHandler
	Report     ReportHandler
}

func NewRouter(env string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/check-in", h.Attendance.CheckIn)
			r.Post("/check-out", h.Attendance.CheckOut)
			r.Get("/", h.Attendance.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Attendance.Get)
				r.Get("/movements", h.Movement.ListByAttendance)
			})
		})

		r.Route("/movements", func(r chi.Router) {
			r.Post("/samples", h.Movement.RecordSample)
			r.Route("/employees/{employeeID}", func(r chi.Router) {
				r.Get("/", h.Movement.ListByEmployee)
				r.Get("/stream", h.Movement.Stream)
			})
		})

		r.Route("/leave", func(r chi.Router) {
			r.Post("/requests", h.Leave.Submit)
			r.Get("/requests", h.Leave.List)
			r.Route("/requests/{id}", func(r chi.Router) {
				r.Post("/approve", h.Leave.Approve)
				r.Post("/reject", h.Leave.Reject)
				r.Post("/cancel", h.Leave.Cancel)
			})
			r.Get("/balances/{employeeID}", h.Leave.Balances)
		})

		r.Route("/centers", func(r chi.Router) {
			r.Get("/", h.Center.List)
			r.Post("/", h.Center.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Center.Get)
				r.Put("/", h.Center.Update)
			})
		})

		r.Route("/policies", func(r chi.Router) {
			r.Put("/", h.Center.UpsertPolicy)
			r.Get("/employees/{employeeID}", h.Center.GetEmployeePolicy)
		})

		r.Get("/dashboard", h.Dashboard.Get)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/attendance/monthly", h.Report.MonthlyAttendance)
			r.Get("/attendance/monthly/export", h.Report.MonthlyAttendanceXLSX)
		})
	})
	return r
}
