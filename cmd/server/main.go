package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/praxishq/praxis-backend/internal/config"
	"github.com/praxishq/praxis-backend/internal/identity"
	"github.com/praxishq/praxis-backend/internal/infrastructure/database"
	"github.com/praxishq/praxis-backend/internal/infrastructure/datastore"
	httpServer "github.com/praxishq/praxis-backend/internal/infrastructure/http"
	"github.com/praxishq/praxis-backend/internal/logger"
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

	// Run database migrations
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	repos := database.NewRepositories(db)

	// Identity provider and data-plane wiring. The provider mints session
	// tokens; the factory builds clients that attach them per request; the
	// bridge tracks whether the handshake currently holds.
	provider := identity.NewProviderClient(identity.ProviderClientConfig{
		BaseURL:   cfg.Service.Identity.BaseURL,
		APIKey:    cfg.Service.Identity.APIKey,
		SessionID: cfg.Service.Identity.SessionID,
		Template:  cfg.Service.Identity.TokenTemplate,
	}, zapLogger)

	factory := identity.NewClientFactory(cfg.Service.Datastore.APIKey, identity.TokenOptions{
		Template: cfg.Service.Identity.TokenTemplate,
	})
	dataClient := datastore.NewClient(
		factory.AuthenticatedClient(provider),
		cfg.Service.Datastore.ProjectURL,
		cfg.Service.Datastore.APIKey,
		zapLogger,
	)

	bridge := identity.NewBridge(provider, dataClient, zapLogger)

	// Run the first handshake before serving; failure is not fatal because
	// public routes do not need the data plane.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if ok := bridge.Refresh(ctx); !ok {
			snap := bridge.Snapshot()
			zapLogger.Warn("Auth bridge not authenticated at startup",
				zap.String("state", string(snap.State)),
				zap.Error(snap.Err))
		}
		cancel()
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize server
	httpSrv := httpServer.NewServer(cfg, zapLogger, repos, bridge, provider)

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down server...")

	if err := httpSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
