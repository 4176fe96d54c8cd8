package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/worklog-backend-go/internal/config"
	"github.com/cmlabs-hris/worklog-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	cfg *config.Config,
	worklogMetrics *metrics.WorklogMetrics,
	entryHandler EntryHandler,
	employeeHandler EmployeeHandler,
	auditHandler AuditHandler,
	settingHandler SettingHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "worklog"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method("GET", "/metrics", worklogMetrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(worklogMetrics.Middleware)
		r.Use(middleware.Actor(cfg.App.AdminPrincipal))

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", entryHandler.ListEntries)
			r.Post("/", entryHandler.CreateEntry)
			r.Post("/import", entryHandler.ImportRecords)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", entryHandler.GetEntry)
				r.Put("/", entryHandler.UpdateEntry)
				r.Delete("/", entryHandler.DeleteEntry)
				r.Get("/integrity", entryHandler.VerifyEntry)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.ListEmployees)
			r.Post("/", employeeHandler.CreateEmployee)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", employeeHandler.GetEmployee)
				r.Put("/", employeeHandler.UpdateEmployee)
				r.Delete("/", employeeHandler.DeleteEmployee)
			})
		})

		r.Route("/audit", func(r chi.Router) {
			r.Get("/", auditHandler.ListRecent)
			r.Get("/{table}/{id}", auditHandler.ListForRecord)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingHandler.GetSettings)
			r.Put("/", settingHandler.UpdateSettings)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/weekday-pattern", reportHandler.GetWeekdayPattern)
			r.Get("/period-baseline", reportHandler.GetPeriodBaseline)
			r.Get("/task-intervals", reportHandler.GetTaskIntervals)
		})

		r.Get("/exports/timesheet", reportHandler.ExportTimesheet)
	})

	return r
}
