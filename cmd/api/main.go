package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/worklog-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/worklog-backend-go/internal/repository/postgresql"
	auditService "github.com/cmlabs-hris/worklog-backend-go/internal/service/audit"
	employeeService "github.com/cmlabs-hris/worklog-backend-go/internal/service/employee"
	entryService "github.com/cmlabs-hris/worklog-backend-go/internal/service/entry"
	exportService "github.com/cmlabs-hris/worklog-backend-go/internal/service/export"
	reportService "github.com/cmlabs-hris/worklog-backend-go/internal/service/report"
	settingService "github.com/cmlabs-hris/worklog-backend-go/internal/service/setting"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("app", "worklog"), slog.String("env", cfg.App.Env)))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			slog.Error("Error running migrations", "error", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	worklogMetrics, err := metrics.NewWorklogMetrics(registry)
	if err != nil {
		slog.Error("Error registering metrics", "error", err)
		os.Exit(1)
	}

	transactor := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	entryRepo := postgresql.NewEntryRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	settingRepo := postgresql.NewSettingRepository(db)

	settingSvc := settingService.NewSettingService(transactor, settingRepo)
	auditSvc := auditService.NewAuditService(auditRepo, worklogMetrics, cfg.Audit.DefaultLimit, cfg.Audit.MaxLimit)
	employeeSvc := employeeService.NewEmployeeService(transactor, employeeRepo, auditSvc)
	entrySvc := entryService.NewEntryService(transactor, entryRepo, employeeRepo, settingSvc, worklogMetrics)
	reportSvc := reportService.NewReportService(entryRepo, worklogMetrics)
	exportSvc := exportService.NewExportService(entryRepo, employeeRepo, settingSvc, worklogMetrics)

	entryHandler := appHTTP.NewEntryHandler(entrySvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	auditHandler := appHTTP.NewAuditHandler(auditSvc)
	settingHandler := appHTTP.NewSettingHandler(settingSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc, exportSvc)

	router := appHTTP.NewRouter(
		cfg,
		worklogMetrics,
		entryHandler,
		employeeHandler,
		auditHandler,
		settingHandler,
		reportHandler,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler(ctx)
	cron.NewIntegrityJobs(entrySvc, cfg.Integrity.SweepInterval).RegisterJobs(scheduler)
	scheduler.Start()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	scheduler.Stop()
}
