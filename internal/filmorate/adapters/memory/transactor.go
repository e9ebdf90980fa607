package memory

import (
	"context"

	"go.uber.org/zap"

	"filmorate/pkg/logger"
)

type txKeyType struct{}

var txKey = txKeyType{}

// inTx сообщает, выполняется ли ctx внутри единицы работы этого хранилища.
func (s *Storage) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey).(*Storage)
	return ok && owner == s
}

// Transactor реализует repositories.Transactor для хранилища в памяти.
type Transactor struct {
	s *Storage
}

// NewTransactor создает Transactor поверх хранилища.
func NewTransactor(s *Storage) *Transactor {
	return &Transactor{s: s}
}

// WithinTx выполняет fn эксклюзивно: чтения и записи вне единицы работы
// ждут ее завершения. При ошибке или панике изменения fn откатываются
// по журналу отмены.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if t.s.inTx(ctx) {
		return fn(ctx)
	}

	log := logger.Log(ctx).With(zap.String("method", "memory.Transactor.WithinTx"))

	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	t.s.begin()

	defer func() {
		if p := recover(); p != nil {
			t.s.finish(false)
			log.Error(ctx, "transaction panicked, rolled back")
			panic(p)
		}
		if err != nil {
			t.s.finish(false)
			log.Debug(ctx, "transaction rolled back", zap.Error(err))
			return
		}
		t.s.finish(true)
	}()

	return fn(context.WithValue(ctx, txKey, t.s))
}

func (s *Storage) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journal = &journal{}
}

// finish фиксирует или откатывает единицу работы и закрывает журнал.
func (s *Storage) finish(commit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !commit {
		s.journal.rollback(&s.data)
	}
	s.journal = nil
}
