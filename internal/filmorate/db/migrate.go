package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"filmorate/pkg/logger"
)

// Константы журнала миграций.
const (
	LogSchemaMigrated = "filmorate schema migrated"
	LogSchemaUpToDate = "filmorate schema is up to date"
	LogCloseMigrator  = "failed to close migration instance"
)

// Константы ошибок миграций.
const (
	ErrCreateMigrator  = "failed to create migration instance"
	ErrApplyMigrations = "failed to apply migrations"
	ErrReadVersion     = "failed to read schema version"
)

// ErrDirtySchema означает, что прошлая миграция оборвалась и схема требует ручного исправления.
var ErrDirtySchema = errors.New("schema is dirty")

type migrator interface {
	Up() error
	Version() (version uint, dirty bool, err error)
}

// Migrate применяет миграции из sourceURL к базе databaseURL и возвращает
// версию схемы после применения.
func Migrate(ctx context.Context, sourceURL, databaseURL string) (uint, error) {
	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrCreateMigrator, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Log(ctx).Warn(ctx, LogCloseMigrator,
				zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	return applyMigrations(ctx, m)
}

func applyMigrations(ctx context.Context, m migrator) (uint, error) {
	log := logger.Log(ctx)

	before, _, err := schemaVersion(m)
	if err != nil {
		return 0, err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return before, fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	after, dirty, err := schemaVersion(m)
	if err != nil {
		return before, err
	}
	if dirty {
		return after, fmt.Errorf("%w: version %d", ErrDirtySchema, after)
	}

	if after == before {
		log.Info(ctx, LogSchemaUpToDate, zap.Uint("version", after))
	} else {
		log.Info(ctx, LogSchemaMigrated, zap.Uint("from", before), zap.Uint("to", after))
	}
	return after, nil
}

// schemaVersion читает версию схемы. Пустая база имеет версию 0.
func schemaVersion(m migrator) (uint, bool, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", ErrReadVersion, err)
	}
	return version, dirty, nil
}
