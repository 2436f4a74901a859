package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/vetfinder/vetfinder-backend/cmd/mainconfig"
	"github.com/vetfinder/vetfinder-backend/internal/api/router"
	"github.com/vetfinder/vetfinder-backend/internal/appointments"
	"github.com/vetfinder/vetfinder-backend/internal/catalog"
	"github.com/vetfinder/vetfinder-backend/internal/company"
	appconfig "github.com/vetfinder/vetfinder-backend/internal/config"
	"github.com/vetfinder/vetfinder-backend/internal/geo"
	"github.com/vetfinder/vetfinder-backend/internal/notify"
	"github.com/vetfinder/vetfinder-backend/internal/observability/metrics"
	"github.com/vetfinder/vetfinder-backend/internal/photos"
	"github.com/vetfinder/vetfinder-backend/internal/reviews"
	"github.com/vetfinder/vetfinder-backend/internal/wizard"
	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

func main() {
	// Load .env in development; ignore when absent.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting vetfinder API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Repositories. Without DATABASE_URL everything runs in memory, which is
	// enough for local development against the seeded catalog.
	var (
		catalogRepo      catalog.Repository
		companyRepo      company.Repository
		appointmentsRepo appointments.Repository
		reviewsRepo      reviews.Repository
		adminDB          *sql.DB
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("failed to ping database", "error", err)
			os.Exit(1)
		}

		catalogRepo = catalog.NewPostgresRepository(pool)
		companyRepo = company.NewPostgresRepository(pool)
		appointmentsRepo = appointments.NewPostgresRepository(pool)
		reviewsRepo = reviews.NewPostgresRepository(pool)

		adminDB, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open admin db", "error", err)
			os.Exit(1)
		}
		defer adminDB.Close()
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory repositories")
		catalogRepo = catalog.NewInMemoryRepository(catalog.SeedCategories(), catalog.SeedTemplates())
		companyRepo = company.NewInMemoryRepository()
		appointmentsRepo = appointments.NewInMemoryRepository()
		reviewsRepo = reviews.NewInMemoryRepository()
	}

	// Draft storage for the registration wizard.
	var draftStore wizard.DraftStore
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Error("failed to ping redis", "error", err, "addr", cfg.RedisAddr)
			os.Exit(1)
		}
		draftStore = wizard.NewRedisStore(client, cfg.DraftTTL)
	} else {
		logger.Warn("REDIS_ADDR not set, drafts are kept in process memory")
		draftStore = wizard.NewMemoryStore(cfg.DraftTTL)
	}

	// AWS-backed photo storage and email. Both degrade to local substitutes
	// when not configured.
	var photoStore photos.Store = photos.NewMemoryStore()
	var emailSender notify.EmailSender = notify.NewStubEmailSender(logger)
	if cfg.PhotoBucket != "" || cfg.EmailProvider == "ses" {
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		if cfg.PhotoBucket != "" {
			photoStore = photos.NewS3Store(s3.NewFromConfig(awsCfg), cfg.PhotoBucket)
		}
		if cfg.EmailProvider == "ses" {
			emailSender = notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
				FromEmail: cfg.SESFromEmail,
				FromName:  cfg.SESFromName,
			}, logger)
		}
	}
	if cfg.EmailProvider == "sendgrid" {
		emailSender = notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
	}

	notifier := notify.NewService(emailSender, logger)
	manager := company.NewManager(companyRepo, notifier, logger)

	geocoder := geo.NewGeocoder(geo.GeocoderConfig{
		BaseURL:   cfg.NominatimBaseURL,
		UserAgent: cfg.NominatimUserAgent,
		Timeout:   cfg.GeocodeTimeout,
	}, logger)

	wizardMetrics := metrics.NewWizardMetrics(nil)
	wizardService := wizard.NewService(draftStore, catalogRepo, manager, geocoder, wizardMetrics, logger)

	routerCfg := &router.Config{
		Logger:              logger,
		CatalogHandler:      catalog.NewHandler(catalogRepo, logger),
		CompanyHandler:      company.NewHandler(manager, companyRepo, photoStore, cfg.MaxPhotoSizeBytes, logger),
		WizardHandler:       wizard.NewHandler(wizardService, photoStore, cfg.MaxPhotoSizeBytes, logger),
		AppointmentsHandler: appointments.NewHandler(appointmentsRepo, logger),
		ReviewsHandler:      reviews.NewHandler(reviewsRepo, logger),
		AdminAuthSecret:     cfg.AdminJWTSecret,
		MetricsHandler:      promhttp.Handler(),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		WizardRateLimit:     2,
		WizardRateBurst:     10,
		DB:                  adminDB,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
