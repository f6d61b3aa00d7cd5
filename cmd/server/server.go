package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"supportchat/internal/config"
	domain "supportchat/internal/domain/chat"
	"supportchat/internal/infrastructure/cache"
	"supportchat/internal/infrastructure/database"
	"supportchat/internal/infrastructure/llm"
	"supportchat/internal/infrastructure/logger"
	"supportchat/internal/infrastructure/observability"
	chatrepo "supportchat/internal/infrastructure/repository/chat"
	"supportchat/internal/interfaces/httpserver"
)

// @title Support Chat API
// @version 1.0
// @description Chat support backend with Redis-cached conversation history
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	historyCache, err := cache.NewRedisHistoryCache(cfg.RedisURL, cfg.CacheKeyPrefix, cfg.HistoryLimit, cfg.CacheOpTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() {
		if err := historyCache.Close(); err != nil {
			log.Error().Err(err).Msg("close redis client")
		}
	}()

	replyGenerator := llm.NewClient(llm.Options{
		APIKey:      cfg.ProviderAPIKey,
		BaseURL:     cfg.ProviderBaseURL,
		Model:       cfg.ProviderModel,
		MaxTokens:   cfg.ProviderMaxTokens,
		Temperature: cfg.ProviderTemp,
		Timeout:     cfg.ProviderTimeout,
	}, log)

	chatStore := chatrepo.NewPostgresRepository(db)
	chatService := domain.NewService(chatStore, historyCache, replyGenerator, cfg.HistoryLimit, log)

	httpServer := httpserver.New(cfg, log, chatService)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
