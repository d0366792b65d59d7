package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/chronos-hq/chronos-backend-go/internal/config"
	appHTTP "github.com/chronos-hq/chronos-backend-go/internal/handler/http"
	"github.com/chronos-hq/chronos-backend-go/internal/pkg/clock"
	"github.com/chronos-hq/chronos-backend-go/internal/pkg/database"
	"github.com/chronos-hq/chronos-backend-go/internal/pkg/jwt"
	"github.com/chronos-hq/chronos-backend-go/internal/pkg/validator"
	"github.com/chronos-hq/chronos-backend-go/internal/repository/postgresql"
	attendanceService "github.com/chronos-hq/chronos-backend-go/internal/service/attendance"
	authService "github.com/chronos-hq/chronos-backend-go/internal/service/auth"
	"github.com/chronos-hq/chronos-backend-go/internal/service/authz"
	reportService "github.com/chronos-hq/chronos-backend-go/internal/service/report"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLogLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "chronos-backend"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		logger.Error("database connection failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	thresholdTime, ok := validator.IsValidClockTime(cfg.Attendance.LateThreshold)
	if !ok {
		logger.Error("invalid ATTENDANCE_LATE_THRESHOLD, expected HH:MM",
			slog.String("value", cfg.Attendance.LateThreshold))
		os.Exit(1)
	}
	lateThreshold := time.Duration(thresholdTime.Hour())*time.Hour +
		time.Duration(thresholdTime.Minute())*time.Minute

	eventRepo := postgresql.NewEventRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	teamRepo := postgresql.NewTeamRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authorizer := authz.NewAuthorizer(teamRepo)

	attendanceSvc := attendanceService.NewAttendanceService(eventRepo, authorizer)
	reportSvc := reportService.NewReportService(eventRepo, teamRepo, clock.System(), lateThreshold, logger)
	authSvc := authService.NewAuthService(userRepo, jwtService)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         logger,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		jwtService,
		authHandler,
		attendanceHandler,
		reportHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server listening", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
