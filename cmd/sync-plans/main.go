package main

import (
	"context"
	"log"

	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"github.com/praxishq/praxis-backend/internal/config"
	"github.com/praxishq/praxis-backend/internal/infrastructure/database"
	"github.com/praxishq/praxis-backend/internal/logger"
	"github.com/praxishq/praxis-backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize Stripe
	stripe.Key = cfg.Service.StripeSecretKey

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run migrations
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	repos := database.NewRepositories(db)

	// Create plan sync service
	planSync := usecase.NewPlanSyncService(repos.Plan, zapLogger)

	ctx := context.Background()

	stripeSynced := 0
	if cfg.Service.StripeSecretKey != "" {
		stripeSynced, err = planSync.SyncFromStripe(ctx)
		if err != nil {
			zapLogger.Fatal("Failed to sync plans from Stripe", zap.Error(err))
		}
	} else {
		zapLogger.Warn("No Stripe secret key configured, skipping Stripe sync")
	}

	fileSynced := 0
	if cfg.Service.PlansFile != "" {
		fileSynced, err = planSync.SyncFromYAML(ctx, cfg.Service.PlansFile)
		if err != nil {
			zapLogger.Fatal("Failed to sync plans from file", zap.Error(err))
		}
	}

	zapLogger.Info("Initial sync completed",
		zap.Int("stripe_plans_synced", stripeSynced),
		zap.Int("file_plans_synced", fileSynced))
}
