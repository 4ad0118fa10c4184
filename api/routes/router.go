package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fortlifegroup/sst-backend/api/controllers"
	"github.com/fortlifegroup/sst-backend/api/middleware"
	"github.com/fortlifegroup/sst-backend/internal/audits"
	"github.com/fortlifegroup/sst-backend/internal/auth"
	"github.com/fortlifegroup/sst-backend/internal/company"
	"github.com/fortlifegroup/sst-backend/internal/dashboard"
	"github.com/fortlifegroup/sst-backend/internal/epp"
	"github.com/fortlifegroup/sst-backend/internal/incidents"
	"github.com/fortlifegroup/sst-backend/internal/passwordreset"
	"github.com/fortlifegroup/sst-backend/internal/uploads"
	"github.com/fortlifegroup/sst-backend/internal/users"
	"github.com/fortlifegroup/sst-backend/internal/workers"
	"github.com/fortlifegroup/sst-backend/pkg/auth/session"
	"github.com/fortlifegroup/sst-backend/pkg/config"
	"github.com/fortlifegroup/sst-backend/pkg/logger"
	"github.com/fortlifegroup/sst-backend/pkg/metrics"
	"github.com/fortlifegroup/sst-backend/pkg/redis"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database dbPinger,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	usersService users.Service,
	companyService company.Service,
	workersService workers.Service,
	eppService epp.Service,
	auditsService audits.Service,
	incidentsService incidents.Service,
	passwordResetService passwordreset.Service,
	uploadsService uploads.Service,
	dashboardService dashboard.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)
	resetPolicy := middleware.NewAuthRateLimitPolicy(
		"password_reset",
		cfg.AuthRateLimit.ResetWindow,
		cfg.AuthRateLimit.ResetIPLimit,
		cfg.AuthRateLimit.ResetEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, database, redisClient, logg))
	})
	if httpMetrics != nil {
		r.Handle("/metrics", httpMetrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		r.Post("/logout", controllers.AuthLogout(authService, cfg.JWT, logg))
		r.Route("/password-reset", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(resetPolicy, redisClient, logg)).Post("/request", controllers.PasswordResetRequest(passwordResetService, logg))
			r.Post("/confirm", controllers.PasswordResetConfirm(passwordResetService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/profile", controllers.Profile(usersService, logg))
			r.Put("/profile", controllers.UpdateProfile(usersService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CompanyContext(companyService, logg))

			r.Route("/workers", func(r chi.Router) {
				r.Get("/", controllers.ListWorkers(workersService, logg))
				r.Post("/", controllers.CreateWorker(workersService, logg))
				r.Put("/{workerId}", controllers.UpdateWorker(workersService, logg))
			})
			r.Route("/epp-deliveries", func(r chi.Router) {
				r.Get("/", controllers.ListEppDeliveries(eppService, logg))
				r.Post("/", controllers.CreateEppDelivery(eppService, logg))
			})
			r.Route("/audits", func(r chi.Router) {
				r.Get("/", controllers.ListAudits(auditsService, logg))
				r.Post("/", controllers.CreateAudit(auditsService, logg))
			})
			r.Route("/incidents", func(r chi.Router) {
				r.Get("/", controllers.ListIncidents(incidentsService, logg))
				r.Post("/", controllers.CreateIncident(incidentsService, logg))
				r.Put("/{incidentId}", controllers.UpdateIncident(incidentsService, logg))
				r.Delete("/{incidentId}", controllers.DeleteIncident(incidentsService, logg))
			})
			r.Post("/uploads/signature", controllers.SignUpload(uploadsService, logg))
			r.Get("/dashboard", controllers.DashboardSummary(dashboardService, logg))
		})
	})

	return r
}
