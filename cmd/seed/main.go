package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/fortlifegroup/sst-backend/internal/company"
	"github.com/fortlifegroup/sst-backend/internal/users"
	"github.com/fortlifegroup/sst-backend/pkg/config"
	"github.com/fortlifegroup/sst-backend/pkg/db"
	"github.com/fortlifegroup/sst-backend/pkg/logger"
)

// Seeds the baseline rows the API expects: the default company every new
// account is assigned to. Safe to run repeatedly.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(cfg.DB, cfg.FeatureFlags)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	gdb := dbClient.DB(ctx)
	companyService, err := company.NewService(company.NewRepository(gdb), users.NewRepository(gdb))
	if err != nil {
		logg.Error(ctx, "failed to create company service", err)
		os.Exit(1)
	}

	if err := companyService.EnsureDefaultCompany(ctx); err != nil {
		logg.Error(ctx, "failed to seed default company", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "company_id", company.DefaultCompanyID), "seed complete")
}
