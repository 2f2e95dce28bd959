package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/config"
	appHTTP "github.com/kaamgar/kaamgar-backend-go/internal/handler/http"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/middleware"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/cron"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/database"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/jwt"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/storage"
	"github.com/kaamgar/kaamgar-backend-go/internal/repository/postgresql"
	advanceService "github.com/kaamgar/kaamgar-backend-go/internal/service/advance"
	attendanceService "github.com/kaamgar/kaamgar-backend-go/internal/service/attendance"
	serviceAuth "github.com/kaamgar/kaamgar-backend-go/internal/service/auth"
	contractorService "github.com/kaamgar/kaamgar-backend-go/internal/service/contractor"
	holidayService "github.com/kaamgar/kaamgar-backend-go/internal/service/holiday"
	reportService "github.com/kaamgar/kaamgar-backend-go/internal/service/report"
	workerService "github.com/kaamgar/kaamgar-backend-go/internal/service/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	contractorRepo := postgresql.NewContractorRepository(db)
	tokenRepo := postgresql.NewTokenRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	transactor := postgresql.NewTransactor(db)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}
	revoked, err := tokenRepo.ListActive(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("load revoked tokens: %w", err)
	}
	JWTService.RestoreRevoked(revoked)

	contractorSvc := contractorService.NewContractorService(contractorRepo)
	authSvc := serviceAuth.NewAuthService(contractorRepo, tokenRepo, JWTService)
	workerSvc := workerService.NewWorkerService(workerRepo, fileStorage)
	attendanceSvc := attendanceService.NewAttendanceService(transactor, attendanceRepo, workerRepo)
	advanceSvc := advanceService.NewAdvanceService(advanceRepo, workerRepo)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	reportSvc := reportService.NewReportService(workerRepo, attendanceRepo, advanceRepo, holidayRepo)

	router := appHTTP.NewRouter(cfg.App, JWTService, middleware.NewSubscriptionMiddleware(contractorSvc), appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, contractorSvc),
		Worker:     appHTTP.NewWorkerHandler(workerSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Advance:    appHTTP.NewAdvanceHandler(advanceSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	})

	scheduler := cron.NewScheduler()
	if cfg.Scheduler.Enabled {
		cron.NewSubscriptionJobs(contractorSvc, tokenRepo, JWTService).RegisterJobs(scheduler, cfg.Scheduler.Interval)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
