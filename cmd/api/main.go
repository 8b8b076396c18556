package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/mentorsetu/mentorsetu-api/config"
	"github.com/mentorsetu/mentorsetu-api/internal/cache"
	"github.com/mentorsetu/mentorsetu-api/internal/catalog"
	"github.com/mentorsetu/mentorsetu-api/internal/handlers"
	"github.com/mentorsetu/mentorsetu-api/internal/mcp"
	"github.com/mentorsetu/mentorsetu-api/internal/middleware"
	"github.com/mentorsetu/mentorsetu-api/internal/notify"
	"github.com/mentorsetu/mentorsetu-api/internal/payment"
	"github.com/mentorsetu/mentorsetu-api/internal/receipt"
	"github.com/mentorsetu/mentorsetu-api/internal/repository"
	"github.com/mentorsetu/mentorsetu-api/internal/services"
	"github.com/mentorsetu/mentorsetu-api/pkg/db"
	"github.com/mentorsetu/mentorsetu-api/pkg/httpclient"
	"github.com/mentorsetu/mentorsetu-api/pkg/logger"
	"github.com/mentorsetu/mentorsetu-api/pkg/metrics"
	"github.com/mentorsetu/mentorsetu-api/pkg/objectstorage"
	"github.com/mentorsetu/mentorsetu-api/pkg/profiling"
	"github.com/mentorsetu/mentorsetu-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const (
	bookingBodyLimit = 64 * 1024
	mcpBodyLimit     = 256 * 1024
)

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// openBookingStore connects the configured backend and wraps it with instrumentation.
// The returned closer releases the backend connection.
func openBookingStore(ctx context.Context, cfg *config.Config) (*repository.InstrumentedStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := db.NewPool(ctx, db.PoolConfig{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, nil, err
		}
		store := repository.NewPostgresStore(pool, cfg.Store.BookingsKey)
		return repository.Instrument(store, config.StoreDriverPostgres), func() { db.Close(pool) }, nil

	case config.StoreDriverRedis:
		client, err := repository.NewRedisClient(ctx, repository.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		store := repository.NewRedisStore(client, cfg.Store.BookingsKey)
		return repository.Instrument(store, config.StoreDriverRedis), func() {
			if err := client.Close(); err != nil {
				logger.Warn("Failed to close redis client", zap.Error(err))
			}
		}, nil

	default:
		store := repository.NewMemoryStore(cfg.Store.BookingsKey)
		return repository.Instrument(store, config.StoreDriverMemory), func() {}, nil
	}
}

// newReceiptPublisher returns a publisher that skips uploads when receipt storage is not configured
func newReceiptPublisher(cfg config.ReceiptStorageConfig) *receipt.Publisher {
	if !cfg.Enabled() {
		logger.Info("Receipt uploads disabled: RECEIPTS_STORAGE_BUCKET_NAME or endpoint not set")
		return receipt.NewPublisher(nil)
	}

	client, err := objectstorage.NewStorageClient(objectstorage.Config{
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		BucketName:      cfg.BucketName,
		Endpoint:        cfg.Endpoint,
		Region:          cfg.Region,
	})
	if err != nil {
		logger.Fatal("Failed to initialize receipt storage client", zap.Error(err))
	}
	return receipt.NewPublisher(client)
}

func registerAPIRoutes(
	group *gin.RouterGroup,
	readLimiter, writeLimiter *middleware.RateLimiter,
	mentorHandler *handlers.MentorHandler,
	bookingHandler *handlers.BookingHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	group.GET("/mentors", readLimiter.Middleware(), mentorHandler.ListMentors)
	group.GET("/mentors/categories", readLimiter.Middleware(), mentorHandler.ListCategories)
	group.GET("/mentors/:id", readLimiter.Middleware(), mentorHandler.GetMentorProfile)

	group.POST("/bookings", writeLimiter.Middleware(), middleware.BodySizeLimitMiddleware(bookingBodyLimit), bookingHandler.CreateBooking)
	group.GET("/bookings/submissions/:id", readLimiter.Middleware(), bookingHandler.GetSubmission)
	group.DELETE("/bookings/submissions/:id", writeLimiter.Middleware(), bookingHandler.CancelSubmission)
	group.GET("/bookings/:id/receipt", readLimiter.Middleware(), bookingHandler.GetReceipt)
	group.POST("/bookings/:id/cancel", writeLimiter.Middleware(), dashboardHandler.CancelBooking)

	group.GET("/dashboard", readLimiter.Middleware(), dashboardHandler.GetDashboard)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting MentorSetu API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.String("store_driver", cfg.Store.Driver),
	)

	tracerShutdown, err := tracing.InitTracer(tracing.Config{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
		Endpoint:          cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	metrics.RecordInfrastructureMetrics()

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	startupCtx, cancelStartup := context.WithTimeout(appCtx, 30*time.Second)
	bookingStore, closeStore, err := openBookingStore(startupCtx, cfg)
	if err != nil {
		cancelStartup()
		logger.Fatal("Failed to open booking store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeStore()

	// Catalog must be loaded before serving
	mentorCache := cache.NewMentorCache(catalog.NewStaticSource(), cfg.Cache.MentorTTLSeconds)
	if err := mentorCache.Initialize(startupCtx); err != nil {
		cancelStartup()
		logger.Fatal("Failed to initialize mentor cache", zap.Error(err))
	}
	cancelStartup()
	defer mentorCache.Stop()

	httpClient := httpclient.NewStandardClient()
	notifier := notify.NewWebhookNotifier(cfg.EventTriggers, httpClient)
	receipts := newReceiptPublisher(cfg.ReceiptStorage)

	mentorRepo := repository.NewMentorRepository(mentorCache)

	mentorService := services.NewMentorService(mentorRepo)
	bookingService := services.NewBookingService(
		mentorRepo,
		bookingStore,
		payment.NewSimulatedGateway(millis(cfg.Booking.PaymentDelayMs)),
		notifier,
		receipts,
		services.BookingConfig{
			APIDelay:  millis(cfg.Booking.APIDelayMs),
			Retention: time.Duration(cfg.Booking.SubmissionRetentionMinutes) * time.Minute,
		},
	)
	dashboardService := services.NewDashboardService(bookingStore, notifier, millis(cfg.Booking.CancelDelayMs))

	mentorHandler := handlers.NewMentorHandler(mentorService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	mcpHandler := handlers.NewMCPHandler(mcp.NewServer(mentorService, cfg.Observability.ServiceVersion))
	healthHandler := handlers.NewHealthHandler(mentorCache.IsReady).WithStore(bookingStore)

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader, "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Location", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	readLimiter := middleware.NewRateLimiter(appCtx, rate.Limit(cfg.RateLimit.RequestsPerSecond*5), cfg.RateLimit.Burst*5)
	writeLimiter := middleware.NewRateLimiter(appCtx, rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	mcpLimiter := middleware.NewRateLimiter(appCtx, rate.Limit(cfg.RateLimit.RequestsPerSecond*2), cfg.RateLimit.Burst*2)

	api := router.Group("/api")
	api.GET("/healthcheck", readLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api.POST("/internal/mcp", mcpLimiter.Middleware(), middleware.BodySizeLimitMiddleware(mcpBodyLimit), mcpHandler.HandleMCP)

	v1 := router.Group("/api/v1")
	registerAPIRoutes(v1, readLimiter, writeLimiter, mentorHandler, bookingHandler, dashboardHandler)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		// ?wait=true holds the connection for the whole booking flow
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-appCtx.Done():
				return
			case <-ticker.C:
				metrics.RecordInfrastructureMetrics()
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := bookingService.Shutdown(ctx); err != nil {
		logger.Error("Booking tasks did not finish before shutdown", zap.Error(err))
	}
	stopApp()

	logger.Info("Server exited")
}
