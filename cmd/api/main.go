package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fortlifegroup/sst-backend/api/routes"
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
	"github.com/fortlifegroup/sst-backend/pkg/cloudinary"
	"github.com/fortlifegroup/sst-backend/pkg/config"
	"github.com/fortlifegroup/sst-backend/pkg/db"
	"github.com/fortlifegroup/sst-backend/pkg/logger"
	"github.com/fortlifegroup/sst-backend/pkg/mailer"
	"github.com/fortlifegroup/sst-backend/pkg/metrics"
	"github.com/fortlifegroup/sst-backend/pkg/migrate"
	"github.com/fortlifegroup/sst-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	dbClient, err := db.New(cfg.DB, cfg.FeatureFlags)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	gdb := dbClient.DB(ctx)
	usersRepo := users.NewRepository(gdb)
	companiesRepo := company.NewRepository(gdb)
	workersRepo := workers.NewRepository(gdb)

	authService, err := auth.NewService(usersRepo, sessionManager, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}
	usersService, err := users.NewService(usersRepo, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to create user service", err)
		os.Exit(1)
	}
	companyService, err := company.NewService(companiesRepo, usersRepo)
	if err != nil {
		logg.Error(ctx, "failed to create company service", err)
		os.Exit(1)
	}
	workersService, err := workers.NewService(workersRepo)
	if err != nil {
		logg.Error(ctx, "failed to create worker service", err)
		os.Exit(1)
	}
	eppService, err := epp.NewService(epp.NewRepository(gdb), workersRepo)
	if err != nil {
		logg.Error(ctx, "failed to create epp service", err)
		os.Exit(1)
	}
	auditsService, err := audits.NewService(audits.NewRepository(gdb))
	if err != nil {
		logg.Error(ctx, "failed to create audit service", err)
		os.Exit(1)
	}
	incidentsService, err := incidents.NewService(incidents.NewRepository(gdb), workersRepo)
	if err != nil {
		logg.Error(ctx, "failed to create incident service", err)
		os.Exit(1)
	}
	passwordResetService, err := passwordreset.NewService(
		passwordreset.NewRepository(gdb),
		usersRepo,
		mailer.New(cfg.SMTP),
		cfg.App,
		cfg.PasswordReset,
		cfg.Password,
	)
	if err != nil {
		logg.Error(ctx, "failed to create password reset service", err)
		os.Exit(1)
	}

	uploadsService := uploads.NewService(nil)
	if cfg.Cloudinary.Configured() {
		signer, err := cloudinary.NewSigner(cfg.Cloudinary)
		if err != nil {
			logg.Error(ctx, "failed to create cloudinary signer", err)
			os.Exit(1)
		}
		uploadsService = uploads.NewService(signer)
	} else {
		logg.Warn(ctx, "cloudinary credentials missing, upload signing disabled")
	}

	dashboardService, err := dashboard.NewService(dashboard.NewRepository(gdb))
	if err != nil {
		logg.Error(ctx, "failed to create dashboard service", err)
		os.Exit(1)
	}

	if err := companyService.EnsureDefaultCompany(ctx); err != nil {
		logg.Error(ctx, "failed to ensure default company", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, dbClient, redisClient, sessionManager, httpMetrics,
			authService, usersService, companyService, workersService,
			eppService, auditsService, incidentsService,
			passwordResetService, uploadsService, dashboardService,
		),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
