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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/webwhiz/hrms-backend/internal/config"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/handler/http/middleware"
	"github.com/webwhiz/hrms-backend/internal/pkg/jwt"
	"github.com/webwhiz/hrms-backend/internal/pkg/metrics"
)

type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Leave      LeaveHandler
	Attendance AttendanceHandler
	Project    ProjectHandler
	Task       TaskHandler
	Dashboard  DashboardHandler
}

type RouterOptions struct {
	Env            string
	Version        string
	AllowedOrigins []string
	// UploadsDir is served read-only under /uploads/.
	UploadsDir string
	RateLimit  config.RateLimitConfig
	// Redis is optional; without it login is not rate limited.
	Redis    *redis.Client
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

func NewRouter(jwtService jwt.Service, users user.UserRepository, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: logFormat,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(chiMiddleware.Heartbeat("/health"))

	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	if opts.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir))))
	}

	rateLimited := middleware.RateLimit(opts.RateLimit, opts.Redis)
	authenticated := func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(middleware.AuthRequired(jwtService, users))
	}

	r.Route("/user", func(r chi.Router) {
		r.With(rateLimited).Post("/register", h.Auth.Register)
		r.With(rateLimited).Post("/login", h.Auth.Login)
		r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
		r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)

		r.Group(func(r chi.Router) {
			authenticated(r)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/get-all-users", h.User.List)
			r.Get("/directory", h.User.Directory)
			r.Get("/profile/{id}", h.User.Profile)
			r.Put("/update-profile/{userId}", h.User.UpdateProfile)
			r.Put("/update-password/{userId}", h.User.UpdatePassword)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionUserManage))
				r.Put("/update-status", h.User.UpdateStatus)
				r.Delete("/delete/{userId}", h.User.Delete)
			})
		})
	})

	r.Route("/role", func(r chi.Router) {
		authenticated(r)
		r.Get("/get-roles", h.User.ListRoles)
		r.With(middleware.RequirePermission(user.PermissionRoleManage)).Post("/add-role", h.User.AddRole)
	})

	r.Route("/leave", func(r chi.Router) {
		authenticated(r)
		r.Post("/leave-request", h.Leave.Create)
		r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Patch("/status/{leaveId}", h.Leave.UpdateStatus)
		r.Patch("/update/{leaveId}", h.Leave.Update)
		r.Delete("/delete/{leaveId}", h.Leave.Delete)
		r.Get("/get-by-id/{leaveId}", h.Leave.GetByID)
		r.Get("/get-by-userid/{userId}", h.Leave.ListByUser)
		r.Get("/get-filtered-leaves", h.Leave.ListFiltered)
	})

	r.Route("/attendance", func(r chi.Router) {
		authenticated(r)
		r.Post("/check-in", h.Attendance.CheckIn)
		r.Post("/check-out", h.Attendance.CheckOut)
		r.Get("/employeeAttendance/{userId}", h.Attendance.ListByUser)
		r.Get("/single-user-attendance/{userId}", h.Attendance.ListByUser)
		r.Get("/get-all-attendance", h.Attendance.ListScoped)
		r.Put("/update-attendance/{id}", h.Attendance.Update)
		r.With(middleware.RequirePermission(user.PermissionAttendanceApprove)).Post("/approval", h.Attendance.Approval)
		r.With(middleware.RequirePermission(user.PermissionAttendanceDelete)).Delete("/delete-attendance/{id}", h.Attendance.Delete)
	})

	r.Route("/project", func(r chi.Router) {
		authenticated(r)
		r.Get("/all-projects", h.Project.List)
		r.Get("/all-users", h.Project.AssignableUsers)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionProjectManage))
			r.Post("/create-project", h.Project.Create)
			r.Patch("/update-project/{id}", h.Project.Update)
			r.Delete("/delete-project/{id}", h.Project.Delete)
		})
	})

	r.Route("/task", func(r chi.Router) {
		authenticated(r)
		r.Get("/get-all", h.Task.List)
		r.Get("/get-by-id/{id}", h.Task.GetByID)
		r.Get("/get-by-project/{projectId}", h.Task.ListByProject)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionTaskManage))
			r.Post("/create-task", h.Task.Create)
			r.Put("/update-task/{taskId}", h.Task.Update)
			r.Delete("/delete-task/{taskId}", h.Task.Delete)
			r.Delete("/{taskId}/attachments/{attachmentId}", h.Task.DeleteAttachment)
		})
	})

	r.Route("/dashboard", func(r chi.Router) {
		authenticated(r)
		r.Get("/get-all-data/{userId}", h.Dashboard.GetAllData)
		r.Get("/monthly-calendar-data/{userId}", h.Dashboard.MonthlyCalendar)
	})

	return r
}
