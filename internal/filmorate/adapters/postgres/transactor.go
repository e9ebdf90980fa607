package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"filmorate/pkg/logger"
)

// Transactor реализует repositories.Transactor: транзакция pgx
// передается репозиториям через контекст.
type Transactor struct {
	pool PgxPoolInterface
}

// NewTransactor создает Transactor поверх пула.
func NewTransactor(pool PgxPoolInterface) *Transactor {
	return &Transactor{pool: pool}
}

// WithinTx выполняет fn в транзакции. Ошибка или паника в fn откатывают
// транзакцию, иначе она фиксируется. Вложенный вызов использует внешнюю транзакцию.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey).(pgx.Tx); ok {
		return fn(ctx)
	}

	log := logger.Log(ctx).With(zap.String("repository", "transactor"), zap.String("method", "WithinTx"))

	tx, err := t.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "error beginning transaction", zap.Error(err))
		return fmt.Errorf("error beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Error(ctx, "error rolling back transaction", zap.Error(rbErr))
			}
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			log.Error(ctx, "error committing transaction", zap.Error(commitErr))
			err = fmt.Errorf("error committing transaction: %w", commitErr)
		}
	}()

	return fn(context.WithValue(ctx, txKey, tx))
}
