package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/mentorsetu/mentorsetu-api/config"
	"github.com/mentorsetu/mentorsetu-api/pkg/db"
	"github.com/mentorsetu/mentorsetu-api/pkg/logger"
	"go.uber.org/zap"
)

// Usage: migrate [up|down]
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
		ServiceName: "mentorsetu-migrate",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	direction := db.Up
	if len(os.Args) > 1 {
		direction = db.Direction(os.Args[1])
	}

	if cfg.Database.URL == "" {
		logger.Fatal("DATABASE_URL is required for migrations")
	}

	logger.Info("Starting database migrations",
		zap.String("database", maskDatabaseURL(cfg.Database.URL)),
		zap.String("direction", string(direction)))

	if err := db.RunMigrations(cfg.Database.URL, "file://migrations", direction); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Database migrations completed successfully")
}

// maskDatabaseURL hides the password component of the connection string
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return "***"
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.Redacted()
}
