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
	"github.com/kaamgar/kaamgar-backend-go/internal/config"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/middleware"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/response"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/jwt"
)

const Version = "v1.0.0"

type Handlers struct {
	Auth       AuthHandler
	Worker     WorkerHandler
	Attendance AttendanceHandler
	Advance    AdvanceHandler
	Holiday    HolidayHandler
	Report     ReportHandler
}

func NewRouter(app config.AppConfig, JWTService jwt.Service, subscription *middleware.SubscriptionMiddleware, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(!isProduction(app))
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kaamgar"),
		slog.String("version", Version),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "ok", "version": Version})
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.RequireTenant)

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/me", h.Auth.Me)
			r.Put("/auth/me", h.Auth.UpdateMe)

			// Expired subscriptions are read-only from here on
			r.Group(func(r chi.Router) {
				r.Use(subscription.RequireActiveSubscription)

				r.Route("/workers", func(r chi.Router) {
					r.Get("/", h.Worker.List)
					r.Post("/", h.Worker.Create)
					r.Get("/{id}", h.Worker.Get)
					r.Put("/{id}", h.Worker.Update)
					r.Delete("/{id}", h.Worker.Delete)
					r.Patch("/{id}/toggle-status", h.Worker.ToggleStatus)
					r.Get("/{id}/photo", h.Worker.Photo)
					r.Put("/{id}/photo", h.Worker.UploadPhoto)
					r.Delete("/{id}/photo", h.Worker.RemovePhoto)
				})

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", h.Attendance.List)
					r.Post("/", h.Attendance.Mark)
					r.Post("/bulk", h.Attendance.BulkMark)
					r.Get("/date/{date}", h.Attendance.ListByDate)
					r.Delete("/{id}", h.Attendance.Delete)
				})

				r.Route("/advances", func(r chi.Router) {
					r.Get("/", h.Advance.List)
					r.Post("/", h.Advance.Create)
					r.Get("/worker/{workerId}/monthly", h.Advance.MonthlyTotal)
					r.Get("/{id}", h.Advance.Get)
					r.Put("/{id}", h.Advance.Update)
					r.Patch("/{id}/cancel", h.Advance.Cancel)
					r.Delete("/{id}", h.Advance.Delete)
				})

				r.Route("/holidays", func(r chi.Router) {
					r.Get("/", h.Holiday.List)
					r.Post("/", h.Holiday.Create)
					r.Put("/{id}", h.Holiday.Update)
					r.Delete("/{id}", h.Holiday.Delete)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/dashboard", h.Report.Dashboard)
					r.Get("/daily", h.Report.Daily)
					r.Get("/payroll", h.Report.MonthlyPayroll)
					r.Get("/payroll/export", h.Report.ExportPayrollCSV)
					r.Get("/payroll/workers/{id}", h.Report.WorkerPayroll)
					r.Get("/workers/{id}/stats", h.Report.WorkerStats)
				})
			})
		})
	})
	return r
}

func isProduction(app config.AppConfig) bool {
	return app.Env == "production"
}
