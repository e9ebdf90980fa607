// Package config содержит конфигурацию сервиса фильмотеки.
package config

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgconfig "filmorate/pkg/config"
	"filmorate/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	LogLoadingConfig    = "Loading filmorate service configuration"
	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"
	ErrInvalidConfig    = "Invalid configuration"
)

// ServiceName - имя сервиса в логах загрузки конфигурации.
const ServiceName = "filmorate"

// EnvConfigPath указывает необязательный файл конфигурации.
// Переменные окружения имеют приоритет над значениями из файла.
const EnvConfigPath = "FILMORATE_CONFIG_PATH"

// Бэкенды хранилища.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	LikesDefault = "default"
	LikesRedis   = "redis"
)

// StorageConfig выбирает реализацию хранилищ.
type StorageConfig struct {
	Backend       string `yaml:"backend" env:"FILMORATE_STORAGE" env-default:"memory"`
	Likes         string `yaml:"likes" env:"FILMORATE_LIKES_STORAGE" env-default:"default"`
	MigrationsDir string `yaml:"migrations_dir" env:"FILMORATE_MIGRATIONS_DIR" env-default:"migrations/filmorate"`
}

// Config представляет полную конфигурацию сервиса.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из файла FILMORATE_CONFIG_PATH, если он задан,
// и из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, os.Getenv(EnvConfigPath))
	if err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, ErrInvalidConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("storage", cfg.Storage.Backend),
		zap.String("likes_storage", cfg.Storage.Likes),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("http_body_limit", cfg.HTTP.BodyLimit),
		zap.Duration("shutdown_timeout", cfg.Shutdown.GetTimeout()),
		zap.Duration("shutdown_http_drain", cfg.Shutdown.GetHTTPDrain()))

	return cfg, nil
}

// Validate проверяет допустимость выбранных бэкендов и серверных настроек.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Storage.Likes {
	case LikesDefault, LikesRedis:
	default:
		return fmt.Errorf("unknown likes storage %q", c.Storage.Likes)
	}
	if err := c.HTTP.validate(); err != nil {
		return err
	}
	return c.Shutdown.validate()
}
