package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server         ServerConfig
	Store          StoreConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	Booking        BookingConfig
	ReceiptStorage ReceiptStorageConfig
	EventTriggers  EventTriggerFunctionsConfig
	Logging        LoggingConfig
	Observability  ObservabilityConfig
	Profiling      ProfilingConfig
	Cache          CacheConfig
	RateLimit      RateLimitConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	AllowedOrigins []string
}

type StoreConfig struct {
	Driver      string
	BookingsKey string
}

type DatabaseConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BookingConfig holds the simulated latencies of the booking flow
type BookingConfig struct {
	APIDelayMs                 int
	PaymentDelayMs             int
	CancelDelayMs              int
	SubmissionRetentionMinutes int
}

type ReceiptStorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
}

// Enabled reports whether receipts should be uploaded
func (c ReceiptStorageConfig) Enabled() bool {
	return c.BucketName != "" && c.Endpoint != ""
}

type EventTriggerFunctionsConfig struct {
	BookingConfirmedTriggerURL string
	BookingCancelledTriggerURL string
	BookingFailedTriggerURL    string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

type CacheConfig struct {
	MentorTTLSeconds int // Mentor cache TTL in seconds
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8081")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("STORE_DRIVER", StoreDriverMemory)
	v.SetDefault("BOOKINGS_KEY", "bookings")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("BOOKING_API_DELAY_MS", 1500)
	v.SetDefault("BOOKING_PAYMENT_DELAY_MS", 2000)
	v.SetDefault("BOOKING_CANCEL_DELAY_MS", 1000)
	v.SetDefault("SUBMISSION_RETENTION_MINUTES", 30)
	v.SetDefault("RECEIPTS_STORAGE_REGION", "us-east-1")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_BE_SERVICE_NAME", "mentorsetu-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "mentorsetu")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "mentorsetu-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines,mutex")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)
	v.SetDefault("MENTOR_CACHE_TTL", 600) // 10 minutes in seconds
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
			BookingsKey: v.GetString("BOOKINGS_KEY"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			MinConns: v.GetInt32("DB_MIN_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Booking: BookingConfig{
			APIDelayMs:                 v.GetInt("BOOKING_API_DELAY_MS"),
			PaymentDelayMs:             v.GetInt("BOOKING_PAYMENT_DELAY_MS"),
			CancelDelayMs:              v.GetInt("BOOKING_CANCEL_DELAY_MS"),
			SubmissionRetentionMinutes: v.GetInt("SUBMISSION_RETENTION_MINUTES"),
		},
		ReceiptStorage: ReceiptStorageConfig{
			AccessKeyID:     v.GetString("RECEIPTS_STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("RECEIPTS_STORAGE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("RECEIPTS_STORAGE_BUCKET_NAME"),
			Endpoint:        v.GetString("RECEIPTS_STORAGE_ENDPOINT"),
			Region:          v.GetString("RECEIPTS_STORAGE_REGION"),
		},
		EventTriggers: EventTriggerFunctionsConfig{
			BookingConfirmedTriggerURL: v.GetString("BOOKING_CONFIRMED_TRIGGER_URL"),
			BookingCancelledTriggerURL: v.GetString("BOOKING_CANCELLED_TRIGGER_URL"),
			BookingFailedTriggerURL:    v.GetString("BOOKING_FAILED_TRIGGER_URL"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
		Cache: CacheConfig{
			MentorTTLSeconds: v.GetInt("MENTOR_CACHE_TTL"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blanks
func splitList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	switch c.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	case StoreDriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when STORE_DRIVER=redis")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Store.BookingsKey == "" {
		return fmt.Errorf("BOOKINGS_KEY is required")
	}

	if c.Booking.APIDelayMs < 0 || c.Booking.PaymentDelayMs < 0 || c.Booking.CancelDelayMs < 0 {
		return fmt.Errorf("booking delays must not be negative")
	}
	if c.Booking.SubmissionRetentionMinutes <= 0 {
		return fmt.Errorf("SUBMISSION_RETENTION_MINUTES must be positive")
	}

	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
