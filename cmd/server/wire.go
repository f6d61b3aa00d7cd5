//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"supportchat/internal/config"
	domain "supportchat/internal/domain/chat"
	"supportchat/internal/infrastructure/cache"
	"supportchat/internal/infrastructure/database"
	"supportchat/internal/infrastructure/llm"
	"supportchat/internal/infrastructure/logger"
	chatrepo "supportchat/internal/infrastructure/repository/chat"
	"supportchat/internal/interfaces/httpserver"
)

var chatSet = wire.NewSet(
	chatrepo.NewPostgresRepository,
	wire.Bind(new(domain.Store), new(*chatrepo.PostgresRepository)),
	newHistoryCache,
	wire.Bind(new(domain.HistoryCache), new(*cache.RedisHistoryCache)),
	newReplyGenerator,
	wire.Bind(new(domain.ReplyGenerator), new(*llm.Client)),
	newChatService,
)

// BuildApplication assembles the service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		chatSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newHistoryCache(cfg *config.Config, log zerolog.Logger) (*cache.RedisHistoryCache, error) {
	return cache.NewRedisHistoryCache(cfg.RedisURL, cfg.CacheKeyPrefix, cfg.HistoryLimit, cfg.CacheOpTimeout, log)
}

func newReplyGenerator(cfg *config.Config, log zerolog.Logger) *llm.Client {
	return llm.NewClient(llm.Options{
		APIKey:      cfg.ProviderAPIKey,
		BaseURL:     cfg.ProviderBaseURL,
		Model:       cfg.ProviderModel,
		MaxTokens:   cfg.ProviderMaxTokens,
		Temperature: cfg.ProviderTemp,
		Timeout:     cfg.ProviderTimeout,
	}, log)
}

func newChatService(store domain.Store, historyCache domain.HistoryCache, generator domain.ReplyGenerator, cfg *config.Config, log zerolog.Logger) domain.Service {
	return domain.NewService(store, historyCache, generator, cfg.HistoryLimit, log)
}
