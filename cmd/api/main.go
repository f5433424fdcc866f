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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/webwhiz/hrms-backend/internal/config"
	"github.com/webwhiz/hrms-backend/internal/domain/dashboard"
	appHTTP "github.com/webwhiz/hrms-backend/internal/handler/http"
	"github.com/webwhiz/hrms-backend/internal/pkg/cron"
	"github.com/webwhiz/hrms-backend/internal/pkg/database"
	"github.com/webwhiz/hrms-backend/internal/pkg/events"
	"github.com/webwhiz/hrms-backend/internal/pkg/jwt"
	"github.com/webwhiz/hrms-backend/internal/pkg/logger"
	"github.com/webwhiz/hrms-backend/internal/pkg/metrics"
	"github.com/webwhiz/hrms-backend/internal/pkg/oauth"
	"github.com/webwhiz/hrms-backend/internal/pkg/storage"
	"github.com/webwhiz/hrms-backend/internal/repository/postgresql"
	attendanceService "github.com/webwhiz/hrms-backend/internal/service/attendance"
	serviceAuth "github.com/webwhiz/hrms-backend/internal/service/auth"
	dashboardService "github.com/webwhiz/hrms-backend/internal/service/dashboard"
	"github.com/webwhiz/hrms-backend/internal/service/file"
	leaveService "github.com/webwhiz/hrms-backend/internal/service/leave"
	projectService "github.com/webwhiz/hrms-backend/internal/service/project"
	roleService "github.com/webwhiz/hrms-backend/internal/service/role"
	taskService "github.com/webwhiz/hrms-backend/internal/service/task"
	userService "github.com/webwhiz/hrms-backend/internal/service/user"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	_, logCloser := logger.Setup(cfg.App.LogFile, logger.ParseLevel(cfg.App.LogLevel))
	defer logCloser.Close()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Successfully connected to PostgreSQL", "host", cfg.Database.Host, "db", cfg.Database.Name)

	// Redis is optional: revocations fall back to memory and login is not
	// rate limited without it.
	var rdb *redis.Client
	var blacklist jwt.Blacklist
	if cfg.Redis.Addr != "" {
		rdb, err = database.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Error("Failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		blacklist = jwt.NewRedisBlacklist(rdb, "hrms:revoked:")
	} else {
		slog.Warn("REDIS_ADDR not set, using in-memory token blacklist")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		publisher, err = events.NewAMQPPublisher(cfg.RabbitMQ.URL)
		if err != nil {
			slog.Error("Failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("RABBITMQ_URL not set, domain events are not published")
	}
	defer publisher.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		slog.Error("Failed to initialize local storage", "error", err)
		os.Exit(1)
	}
	fileService := file.NewFileService(fileStorage)

	policy := cfg.Policy
	loc := policy.Location()

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, blacklist)
	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	authSvc := serviceAuth.NewAuthService(userRepo, roleRepo, JWTService, serviceAuth.AccountDefaults{
		PasswordSuffix: policy.Account.DefaultPasswordSuffix,
		SickLeave:      decimal.NewFromFloat(policy.Leave.DefaultSickLeave),
		PaidLeave:      decimal.NewFromFloat(policy.Leave.DefaultPaidLeave),
	})
	userSvc := userService.NewUserService(userRepo, roleRepo)
	roleSvc := roleService.NewRoleService(roleRepo)
	leaveSvc := leaveService.NewLeaveService(tx, leaveRepo, userRepo, fileService, publisher, appMetrics)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, leaveRepo, publisher, appMetrics, loc)
	projectSvc := projectService.NewProjectService(projectRepo, taskRepo, userRepo, fileService)
	taskSvc := taskService.NewTaskService(taskRepo, fileService)
	dashboardSvc := dashboardService.NewDashboardService(attendanceRepo, taskRepo, userRepo, dashboard.CalendarRules{
		Location:     loc,
		WeekendDay:   policy.WeekendDay(),
		LateHour:     policy.Attendance.LateHour,
		FullDayHours: policy.Attendance.FullDayHours,
	})

	router := appHTTP.NewRouter(JWTService, userRepo, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, googleService, cfg.App.FrontendURL),
		User:       appHTTP.NewUserHandler(userSvc, roleSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Project:    appHTTP.NewProjectHandler(projectSvc),
		Task:       appHTTP.NewTaskHandler(taskSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	}, appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		Version:        version,
		AllowedOrigins: cfg.App.AllowedOrigins,
		UploadsDir:     fileStorage.BasePath(),
		RateLimit:      cfg.RateLimit,
		Redis:          rdb,
		Metrics:        appMetrics,
		Gatherer:       registry,
	})

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, policy.Reconcile.Hour, policy.Reconcile.Minute, loc, nil).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server error", "error", err)
		}
	}

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
