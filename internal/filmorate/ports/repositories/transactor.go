package repositories

import "context"

// Transactor выполняет fn как единицу работы: либо все изменения
// сохраняются, либо ни одно. Вложенный вызов присоединяется к внешней транзакции.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
