package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	filmhttp "filmorate/internal/filmorate/adapters/http"
	"filmorate/internal/filmorate/adapters/memory"
	"filmorate/internal/filmorate/adapters/postgres"
	redisstore "filmorate/internal/filmorate/adapters/redis"
	"filmorate/internal/filmorate/app"
	"filmorate/internal/filmorate/config"
	"filmorate/internal/filmorate/db"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/db/redis"
	"filmorate/pkg/logger"
	"filmorate/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "FILMORATE_LOGGER_MODE"
	EnvLoggerLevel = "FILMORATE_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDatabase         = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrStopHTTPServer       = "failed to stop HTTP server"
	ErrCloseStorage         = "failed to close storage"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "filmorate service started"
	LogServiceShutdownDone = "filmorate service shutdown complete"
	LogInitStorage         = "initializing storage"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitStorage,
			zap.String("storage", cfg.Storage.Backend),
			zap.String("likes_storage", cfg.Storage.Likes))

		var closers []shutdown.Hook

		factory, closeStorage, err := openStorage(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrInitDatabase, zap.Error(err))
			exitCode = 1
			return
		}
		if closeStorage != nil {
			closers = append(closers, closeStorage)
		}

		likes := factory.LikeRepository()
		if cfg.Storage.Likes == config.LikesRedis {
			client, err := redis.NewClient(ctx, cfg.Redis.ClientConfig())
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				if closeStorage != nil {
					_ = closeStorage(ctx)
				}
				exitCode = 1
				return
			}
			likes = redisstore.NewLikeRepository(client.RawClient())
			closers = append(closers, client.Close)
		}

		log.Info(ctx, LogInitServices)
		filmService := app.NewFilmUseCase(factory.FilmRepository(), factory.UserRepository(), likes,
			factory.GenreRepository(), factory.RatingRepository(), factory.Transactor())
		userService := app.NewUserUseCase(factory.UserRepository(), factory.FriendshipRepository(), likes,
			factory.Transactor())
		referenceService := app.NewReferenceUseCase(factory.GenreRepository(), factory.RatingRepository())

		log.Info(ctx, LogInitHTTPServer)
		server := fiber.New(cfg.HTTP.ServerConfig())

		filmhttp.SetupRouter(server, filmService, userService, referenceService)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		// Хранилища закрываются только после остановки сервера.
		stop := func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP, zap.Duration("drain", cfg.Shutdown.GetHTTPDrain()))
			drainCtx, cancel := context.WithTimeout(ctx, cfg.Shutdown.GetHTTPDrain())
			if err := server.ShutdownWithContext(drainCtx); err != nil {
				log.Error(ctx, ErrStopHTTPServer, zap.Error(err))
			}
			cancel()
			for _, closeFn := range closers {
				if err := closeFn(ctx); err != nil {
					log.Error(ctx, ErrCloseStorage, zap.Error(err))
				}
			}
			return nil
		}

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), stop)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// openStorage выбирает бэкенд хранилища. Для памяти хук закрытия не нужен.
func openStorage(ctx context.Context, cfg *config.Config) (repositories.Factory, shutdown.Hook, error) {
	if cfg.Storage.Backend != config.StoragePostgres {
		return memory.NewRepositoryFactory(memory.NewStorage()), nil, nil
	}

	database, err := db.New(ctx, &cfg.Postgres, cfg.Storage.MigrationsDir)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func(ctx context.Context) error {
		database.Close(ctx)
		return nil
	}
	return postgres.NewRepositoryFactory(database.Pool()), closeDB, nil
}
