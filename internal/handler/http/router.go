package http

import (
	"log/slog"

	"github.com/cmlabs-hris/workledger/internal/domain/user"
	"github.com/cmlabs-hris/workledger/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workledger/internal/pkg/jwt"
	"github.com/cmlabs-hris/workledger/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups every resource handler mounted by the router.
type Handlers struct {
	Auth       AuthHandler
	Company    CompanyHandler
	Admin      AdminHandler
	Team       TeamHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Advance    AdvanceHandler
	Payroll    PayrollHandler
	Audit      AuditHandler
}

func NewRouter(logger *slog.Logger, allowedOrigins []string, JWTService jwt.Service, users user.UserRepository, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
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

	r.Use(metrics.Instrument)
	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth(), users))

			r.Route("/companies/my", func(r chi.Router) {
				r.Get("/", h.Company.GetMy)

				// Owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Delete("/", h.Company.DeleteMy)
				})
			})

			// Owner only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireOwner)

				r.Route("/admins", func(r chi.Router) {
					r.Get("/", h.Admin.List)
					r.Post("/", h.Admin.Create)
					r.Delete("/{id}", h.Admin.Delete)
				})

				r.Get("/audit-logs", h.Audit.List)
				r.Get("/payroll/export", h.Payroll.Export)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/teams", func(r chi.Router) {
					r.Get("/", h.Team.List)
					r.Post("/", h.Team.Create)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Team.Get)
						r.Get("/attendance", h.Attendance.TeamMatrix)
						r.Put("/attendance", h.Attendance.TeamBatch)
					})
				})

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Employee.Get)
						r.Delete("/", h.Employee.Delete)
						r.Put("/teams", h.Employee.AssignTeams)
					})
				})

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", h.Attendance.List)
					r.Post("/", h.Attendance.Record)
					r.Post("/clear", h.Attendance.Clear)
				})

				r.Route("/advances", func(r chi.Router) {
					r.Get("/", h.Advance.List)
					r.Post("/", h.Advance.Record)
				})

				r.Route("/payroll", func(r chi.Router) {
					r.Get("/", h.Payroll.Monthly)
					r.Get("/report", h.Payroll.Report)
					r.Get("/employees/{id}", h.Payroll.EmployeeStat)
				})
			})
		})
	})
	return r
}
