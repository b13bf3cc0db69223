package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/aqabadeal-png/canroad/internal/app"
	"github.com/aqabadeal-png/canroad/internal/config"
	"github.com/aqabadeal-png/canroad/internal/handler"
	internalRedis "github.com/aqabadeal-png/canroad/internal/redis"
	"github.com/aqabadeal-png/canroad/internal/repository/memory"
	"github.com/aqabadeal-png/canroad/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so Redis can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logrus.WithError(err).Warn("failed to initialize New Relic")
		} else {
			logrus.WithField("app", cfg.NewRelic.AppName).Info("New Relic enabled")
		}
	}

	// Connect Redis when configured; an empty address runs fully in-memory.
	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			logrus.WithError(err).Fatal("failed to connect to redis")
		}
		defer redisClient.Close()
		logrus.WithField("addr", cfg.Redis.Addr).Info("connected to Redis")
	} else {
		logrus.Info("no REDIS_ADDR configured, using in-memory stores")
	}

	server, err := wireServer(ctx, redisClient, nrApp, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to wire server")
	}

	// Start server in goroutine.
	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(ctx context.Context, redisClient *goredis.Client, nrApp *newrelic.Application, cfg *config.Config) (*http.Server, error) {
	// Ephemeral stores: Redis-backed when available, otherwise in-memory.
	var (
		locationStore internalRedis.LocationStoreInterface
		lockStore     internalRedis.LockStoreInterface
		sessionStore  internalRedis.SessionStoreInterface
	)
	if redisClient != nil {
		locationStore = internalRedis.NewLocationStore(redisClient)
		lockStore = internalRedis.NewLockStore(redisClient)
		sessionStore = internalRedis.NewSessionStore(redisClient)
	} else {
		locationStore = memory.NewLocationStore()
		lockStore = memory.NewLockStore()
		sessionStore = memory.NewSessionStore()
	}

	// Initialize repositories and seed fixtures.
	userRepo := memory.NewUserRepository()
	serviceRepo := memory.NewServiceRepository()
	jobRepo := memory.NewJobRepository()
	if err := memory.SeedRepositories(ctx, userRepo, serviceRepo); err != nil {
		return nil, err
	}

	fareCfg := service.DefaultFareConfig()
	fareCfg.PriceLockDuration = cfg.Pricing.PriceLockDuration
	if err := fareCfg.Validate(); err != nil {
		return nil, err
	}

	// Initialize services.
	estimateService := service.NewEstimateService(fareCfg, locationStore, jobRepo, nil)
	pricingService := service.NewPricingService(fareCfg, estimateService, serviceRepo, nil, nil)
	notificationService := service.NewNotificationService()
	bookingService := service.NewBookingService(jobRepo, userRepo, lockStore, pricingService, notificationService, nil)
	catalogService := service.NewCatalogService(serviceRepo, pricingService)
	authService := service.NewAuthService(userRepo, sessionStore)
	invoiceService := service.NewInvoiceService()
	trackingService := service.NewTrackingService(locationStore, userRepo, nil)
	reportService := service.NewReportService(jobRepo)

	// Seed mechanic home bases so the roster starts populated.
	positions := make([]internalRedis.MechanicPosition, 0)
	for _, base := range memory.SeedMechanicBases() {
		positions = append(positions, internalRedis.MechanicPosition{
			MechanicID: base.MechanicID,
			Lat:        base.Lat,
			Lng:        base.Lng,
		})
	}
	if err := trackingService.Seed(ctx, positions); err != nil {
		return nil, err
	}

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(authService)
	pricingHandler := handler.NewPricingHandler(pricingService)
	jobHandler := handler.NewJobHandler(bookingService, invoiceService)
	mechanicHandler := handler.NewMechanicHandler(bookingService, trackingService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	userHandler := handler.NewUserHandler(userRepo)
	reportHandler := handler.NewReportHandler(reportService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:     authHandler,
		PricingHandler:  pricingHandler,
		JobHandler:      jobHandler,
		MechanicHandler: mechanicHandler,
		CatalogHandler:  catalogHandler,
		UserHandler:     userHandler,
		ReportHandler:   reportHandler,
		AuthService:     authService,
		RedisClient:     redisClient,
		NewRelicApp:     nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, nil
}
