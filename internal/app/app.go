package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	redisadapter "github.com/sachin24864/RealEstate-Website/internal/adapter/cache/redis"
	"github.com/sachin24864/RealEstate-Website/internal/adapter/email"
	mongoadapter "github.com/sachin24864/RealEstate-Website/internal/adapter/mongo"
	natsadapter "github.com/sachin24864/RealEstate-Website/internal/adapter/nats"
	"github.com/sachin24864/RealEstate-Website/internal/adapter/storage/local"
	s3adapter "github.com/sachin24864/RealEstate-Website/internal/adapter/storage/s3"
	"github.com/sachin24864/RealEstate-Website/internal/auth"
	"github.com/sachin24864/RealEstate-Website/internal/config"
	"github.com/sachin24864/RealEstate-Website/internal/handler"
	"github.com/sachin24864/RealEstate-Website/internal/platform/logger"
	"github.com/sachin24864/RealEstate-Website/internal/platform/metrics"
	"github.com/sachin24864/RealEstate-Website/internal/platform/tracer"
	"github.com/sachin24864/RealEstate-Website/internal/port/cache"
	"github.com/sachin24864/RealEstate-Website/internal/port/storage"
	"github.com/sachin24864/RealEstate-Website/internal/router"
	"github.com/sachin24864/RealEstate-Website/internal/usecase"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	cfg            *config.Config
	log            *logger.Logger
	server         *http.Server
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	publisher      *natsadapter.Publisher
	tracerProvider *sdktrace.TracerProvider
	inquiries      *usecase.InquiryUseCase
}

// New builds every client and component explicitly. Resources created before
// a failure are released before returning.
func New(cfg *config.Config) (_ *App, err error) {
	ctx := context.Background()

	appLogger, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputFile: cfg.Logger.OutputFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := appLogger.Zap()
	log.Info("Logger initialized", zap.String("env", cfg.Env), zap.String("http_port", cfg.HTTP.Port))

	a := &App{cfg: cfg, log: appLogger}
	defer func() {
		if err != nil {
			a.close(context.Background())
		}
	}()

	a.tracerProvider = tracer.InitTracer(&cfg.Tracing, cfg.Env, appLogger)

	log.Info("Initializing MongoDB client...")
	a.mongoClient, err = mongoadapter.NewMongoDBConnection(&cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	db := a.mongoClient.Database(cfg.Mongo.Database)
	log.Info("MongoDB client initialized", zap.String("database", cfg.Mongo.Database))

	propertyRepo := mongoadapter.NewPropertyMongoRepository(db, log)
	galleryRepo := mongoadapter.NewGalleryMongoRepository(db, log)
	blogRepo := mongoadapter.NewBlogMongoRepository(db, log)
	adminRepo := mongoadapter.NewAdminMongoRepository(db, log)
	inquiryRepo := mongoadapter.NewInquiryMongoRepository(db, log)

	var (
		cacheRepo cache.CacheRepository
		locker    usecase.Locker = usecase.NewLocalLocker()
	)
	if cfg.Redis.Address != "" {
		log.Info("Initializing Redis client...")
		a.redisClient, err = redisadapter.NewRedisClient(&cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
		}
		cacheRepo = redisadapter.NewRedisCacheRepository(a.redisClient, log)
		locker = redisadapter.NewLocker(a.redisClient, cfg.Redis.LockTTL, log)
		log.Info("Redis cache and category lock enabled")
	} else {
		log.Info("Redis is not configured: caching disabled, using in-process category lock")
	}

	var events usecase.EventPublisher
	if cfg.NATS.URL != "" {
		pub, natsErr := natsadapter.NewNATSPublisher(&cfg.NATS, log)
		if natsErr != nil {
			log.Warn("NATS is unavailable, domain events are disabled", zap.Error(natsErr))
		} else {
			a.publisher = pub
			events = pub
		}
	}

	var mailer usecase.Mailer
	if cfg.SMTP.Host != "" {
		mailer = email.NewSMTPSender(&cfg.SMTP, log)
	} else {
		log.Warn("SMTP is not configured: inquiry notices and password resets cannot be mailed")
	}

	var metricsManager *metrics.MetricsManager
	if cfg.Metrics.Enabled {
		metricsManager = metrics.NewMetricsManager(cfg.Metrics.Namespace)
	}

	store, err := newAssetStore(ctx, &cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	assets := usecase.NewAssetManager(store, metricsManager, log)

	propertyUC := usecase.NewPropertyUseCase(propertyRepo, assets, cacheRepo, events, cfg.Redis.CacheTTL, log)
	galleryUC := usecase.NewGalleryUseCase(galleryRepo, assets, locker, events, metricsManager, log)
	blogUC := usecase.NewBlogUseCase(blogRepo, assets, events, log)
	a.inquiries = usecase.NewInquiryUseCase(inquiryRepo, mailer, cfg.SMTP.Inbox, events, metricsManager, log)
	dashboardUC := usecase.NewDashboardUseCase(propertyRepo, inquiryRepo, log)
	authUC := usecase.NewAuthUseCase(adminRepo, tokens, mailer, cfg.SMTP.Inbox, log)
	sitemapUC := usecase.NewSitemapUseCase(blogRepo, propertyRepo, log)

	checks := map[string]handler.Pinger{
		"mongo": func(ctx context.Context) error { return a.mongoClient.Ping(ctx, nil) },
	}
	if a.redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return a.redisClient.Ping(ctx).Err() }
	}

	httpHandler := router.New(router.Handlers{
		Property:  handler.NewPropertyHandler(propertyUC, log),
		Gallery:   handler.NewGalleryHandler(galleryUC, log),
		Blog:      handler.NewBlogHandler(blogUC, log),
		Inquiry:   handler.NewInquiryHandler(a.inquiries, log),
		Dashboard: handler.NewDashboardHandler(dashboardUC, log),
		Auth: handler.NewAuthHandler(authUC, handler.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure || cfg.IsProduction(),
			TTL:    tokens.TTL(),
		}, log),
		Sitemap: handler.NewSitemapHandler(sitemapUC, cfg.Site.Hostname, log),
		Asset:   handler.NewAssetHandler(store, log),
		Health:  handler.NewHealthHandler(checks),
	}, router.Options{
		Tokens:         tokens,
		CookieName:     cfg.Auth.CookieName,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Metrics:        metricsManager,
		ServiceName:    cfg.Tracing.ServiceName,
		Logger:         log,
	})

	a.server = &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	log.Info("HTTP server instance created", zap.String("address", a.server.Addr))
	return a, nil
}

func newAssetStore(ctx context.Context, cfg *config.StorageConfig, log *zap.Logger) (storage.AssetStore, error) {
	switch cfg.Driver {
	case "s3":
		store, err := s3adapter.NewS3Storage(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		return store, nil
	default:
		store, err := local.NewDiskStore(cfg.LocalRoot, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize disk storage: %w", err)
		}
		return store, nil
	}
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
func (a *App) Run() {
	log := a.log.Zap()
	log.Info("Starting application components...")

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("Received shutdown signal, shutting down application...", zap.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("HTTP server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout+5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error during HTTP server graceful shutdown", zap.Error(err))
	} else {
		log.Info("HTTP server stopped successfully")
	}

	a.close(shutdownCtx)
	log.Info("Application shut down successfully")
}

func (a *App) close(ctx context.Context) {
	log := a.log.Zap()

	if a.inquiries != nil {
		a.inquiries.Wait()
	}
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			log.Error("Error disconnecting from MongoDB", zap.Error(err))
		} else {
			log.Info("MongoDB connection closed successfully")
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		} else {
			log.Info("Redis client closed successfully")
		}
	}
	_ = a.log.Sync()
}
