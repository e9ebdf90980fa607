package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/domain/entities"
)

// pendingChanges возвращает число записей в журнале открытой единицы работы.
func (s *Storage) pendingChanges() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.journal == nil {
		return 0
	}
	return len(s.journal.undo)
}

func seededStorage(tb testing.TB, films int) (*Storage, int64) {
	tb.Helper()
	ctx := context.Background()
	s := NewStorage()
	repo := NewFilmRepository(s)
	for i := range films {
		_, err := repo.Create(ctx, &entities.Film{
			Name:        fmt.Sprintf("film-%d", i),
			ReleaseDate: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
			Duration:    90,
			Rating:      entities.Rating{ID: 1},
		})
		require.NoError(tb, err)
	}
	user, err := NewUserRepository(s).Create(ctx, &entities.User{Email: "u@x.ru", Login: "u", Name: "u"})
	require.NoError(tb, err)
	return s, user.ID
}

func TestJournalRecordsOnlyTouchedRows(t *testing.T) {
	for _, films := range []int{1, 5000} {
		t.Run(fmt.Sprintf("films=%d", films), func(t *testing.T) {
			s, userID := seededStorage(t, films)
			likes := NewLikeRepository(s)

			var inside int
			err := NewTransactor(s).WithinTx(context.Background(), func(ctx context.Context) error {
				if err := likes.Add(ctx, 1, userID); err != nil {
					return err
				}
				inside = s.pendingChanges()
				return errors.New("rollback")
			})
			require.Error(t, err)

			assert.Equal(t, 1, inside)
			assert.Zero(t, s.pendingChanges())
			assert.Nil(t, s.journal)
			assert.Empty(t, s.data.likes)
		})
	}
}

func TestJournalIsNotKeptOutsideUnitOfWork(t *testing.T) {
	s, userID := seededStorage(t, 3)
	require.NoError(t, NewLikeRepository(s).Add(context.Background(), 2, userID))
	assert.Nil(t, s.journal)
}

func BenchmarkLikeWithinTx(b *testing.B) {
	for _, films := range []int{1000, 100000} {
		b.Run(fmt.Sprintf("films=%d", films), func(b *testing.B) {
			s, userID := seededStorage(b, films)
			tx := NewTransactor(s)
			likes := NewLikeRepository(s)
			ctx := context.Background()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				filmID := int64(i%films) + 1
				err := tx.WithinTx(ctx, func(ctx context.Context) error {
					if err := likes.Add(ctx, filmID, userID); err != nil {
						return err
					}
					return likes.Remove(ctx, filmID, userID)
				})
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
