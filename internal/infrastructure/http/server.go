package http

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	handlers "github.com/praxishq/praxis-backend/internal/adapter/handler/http"
	"github.com/praxishq/praxis-backend/internal/config"
	"github.com/praxishq/praxis-backend/internal/identity"
	"github.com/praxishq/praxis-backend/internal/infrastructure/database"
	"github.com/praxishq/praxis-backend/internal/logger"
	"github.com/praxishq/praxis-backend/internal/middleware/auth"
	"github.com/praxishq/praxis-backend/internal/usecase"
)

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	repos    *database.Repositories
	bridge   *identity.Bridge
	metadata usecase.MetadataWriter
}

func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	repos *database.Repositories,
	bridge *identity.Bridge,
	metadata usecase.MetadataWriter,
) *Server {
	e := echo.New()
	e.HideBanner = true

	// Initialize Stripe
	stripe.Key = cfg.Service.StripeSecretKey

	// Middleware
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config:   cfg,
		logger:   log,
		echo:     e,
		repos:    repos,
		bridge:   bridge,
		metadata: metadata,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Usecases
	subscriptionService := usecase.NewSubscriptionService(s.repos.Subscriber, s.repos.Plan, s.logger)
	checkoutService := usecase.NewCheckoutService(s.repos.Subscriber, s.repos.Plan, s.config.Service.ClientURL, s.logger)
	websiteService := usecase.NewWebsiteService(s.repos.Website, s.repos.Profile, s.logger)
	onboardingService := usecase.NewOnboardingService(s.repos.Profile, s.repos.Subscriber, s.metadata, s.logger)
	planSyncService := usecase.NewPlanSyncService(s.repos.Plan, s.logger)

	// Handlers
	healthHandler := handlers.NewHealthHandler(s.config.Service.Name, s.config.Service.Version, s.bridge)
	plansHandler := handlers.NewPlansHandler(s.repos.Plan, s.logger)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, s.logger)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, s.logger)
	websiteHandler := handlers.NewWebsiteHandler(websiteService, s.logger)
	siteHandler := handlers.NewSiteHandler(websiteService, s.logger)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService, s.logger)
	webhookHandler := handlers.NewWebhookHandler(
		s.config.Service.StripeWebhookSecret,
		s.repos.Subscriber,
		s.repos.Plan,
		subscriptionService,
		planSyncService,
		s.logger,
	)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.Datastore.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
			"/webhook",
			"/sites",
			"/api/v1/plans",
		},
	}

	// Health checks
	s.echo.GET("/health", healthHandler.Health)
	s.echo.GET("/health/auth", healthHandler.AuthStatus)

	// Published sites are served without authentication
	s.echo.GET("/sites/:slug", siteHandler.ServeSite)

	// Webhook route (outside API versioning)
	s.echo.POST("/webhook", webhookHandler.HandleWebhook)

	// API v1 routes
	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig))

	// Plans & Pricing - public for browsing (skipped by JWT middleware)
	v1.GET("/plans", plansHandler.GetPlans)

	// Billing
	v1.POST("/check-subscription", subscriptionHandler.CheckSubscription)
	v1.POST("/create-checkout", checkoutHandler.CreateCheckout)

	// Onboarding
	v1.POST("/onboarding/complete", onboardingHandler.CompleteOnboarding)

	// Websites
	websites := v1.Group("/websites")
	websites.POST("", websiteHandler.CreateWebsite)
	websites.GET("", websiteHandler.ListWebsites)
	websites.GET("/:id", websiteHandler.GetWebsite)
	websites.DELETE("/:id", websiteHandler.DeleteWebsite)
}
