package main

import (
	"os"
	"os/signal"
	"syscall"

	"blog/internal/app"
	"blog/internal/config"
	"blog/internal/database"
	"blog/internal/services"
	"blog/pkg/rabbitmq"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.New())
	if err != nil {
		// The logger is not configured yet.
		zap.NewExample().Fatal("invalid configuration", zap.Error(err))
	}

	log, err := newLogger(cfg)
	if err != nil {
		zap.NewExample().Fatal("failed to build logger", zap.Error(err))
	}
	defer log.Sync()

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, log)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close(db)

	// --- Initialize RabbitMQ Client ---
	// Events are optional; without a broker the services skip publishing.
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log.Named("rabbitmq"))
		if err != nil {
			log.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient

		// Audit log of every published event.
		if err := mqClient.Consume(rabbitmq.LogEvents(log.Named("events"))); err != nil {
			log.Error("failed to start RabbitMQ consumer", zap.Error(err))
		}
	} else {
		log.Info("RABBITMQ_URL not set, domain events disabled")
	}

	server := app.New(cfg, db, publisher, log)

	// --- Start HTTP Server ---
	log.Info("starting server", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Listen(cfg.AppPort); err != nil {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down server")

	if err := server.Shutdown(); err != nil {
		log.Error("error during Fiber shutdown", zap.Error(err))
	}

	log.Info("server gracefully stopped")
}

// newLogger builds a console logger in development and a JSON logger otherwise,
// at the level named by LOG_LEVEL.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Development() {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
