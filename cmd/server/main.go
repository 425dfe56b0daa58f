package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pinecove/cabin-console/internal/application"
	"github.com/pinecove/cabin-console/internal/auth"
	"github.com/pinecove/cabin-console/internal/cache"
	"github.com/pinecove/cabin-console/internal/config"
	"github.com/pinecove/cabin-console/internal/database"
	bookingEvents "github.com/pinecove/cabin-console/internal/events"
	"github.com/pinecove/cabin-console/internal/handler"
	"github.com/pinecove/cabin-console/internal/health"
	"github.com/pinecove/cabin-console/internal/kafka"
	"github.com/pinecove/cabin-console/internal/logger"
	"github.com/pinecove/cabin-console/internal/middleware"
	"github.com/pinecove/cabin-console/internal/mutation"
	"github.com/pinecove/cabin-console/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "cabin-console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting cabin-console",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.BookingModel{},
			&repository.CabinModel{},
			&repository.LocationModel{},
			&repository.GuestModel{},
			&repository.SettingsModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		15*time.Minute,
		7*24*time.Hour,
	)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	cabinRepo := repository.NewGormCabinRepository(db)
	locationRepo := repository.NewGormLocationRepository(db)
	guestRepo := repository.NewGormGuestRepository(db)
	settingsRepo := repository.NewGormSettingsRepository(db)

	// Initialize the read cache, undo registry, and mutation notifier
	store := cache.New()
	registry := mutation.NewRegistry()
	notifier := mutation.NewLogNotifier(log)

	// Initialize application services
	bookingService := application.NewBookingService(
		bookingRepo,
		cabinRepo,
		guestRepo,
		settingsRepo,
		store,
		registry,
		notifier,
		kafkaProducer,
		log,
	)
	cabinService := application.NewCabinService(
		cabinRepo,
		locationRepo,
		store,
		registry,
		notifier,
		kafkaProducer,
		log,
	)
	settingsService := application.NewSettingsService(settingsRepo, store, notifier, log)
	statsService := application.NewStatsService(bookingRepo, cabinRepo, log)

	// Initialize and start payment event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + "cabin-console"
	paymentConsumer := bookingEvents.NewPaymentEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		bookingService,
		log,
	)
	defer func() { _ = paymentConsumer.Close() }()

	go func() {
		log.Info("starting payment event consumer")
		if err := paymentConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("payment event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	cabinHandler := handler.NewCabinHandler(cabinService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	statsHandler := handler.NewStatsHandler(statsService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	// Register health check routes
	healthHandler := health.NewHandler(db, "cabin-console")
	healthHandler.RegisterRoutes(router)

	// Register routes
	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	cabinHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	settingsHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	statsHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down cabin-console...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("cabin-console stopped")
}
