package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/pkg/logger"
)

// LikeRepository реализует repositories.LikeRepository и
// repositories.PopularityRanker для работы с Postgres.
type LikeRepository struct {
	pool PgxPoolInterface
}

// NewLikeRepository создает новый экземпляр репозитория отметок.
func NewLikeRepository(pool PgxPoolInterface) *LikeRepository {
	return &LikeRepository{pool: pool}
}

// Add ставит отметку. Повторная отметка игнорируется.
func (r *LikeRepository) Add(ctx context.Context, filmID, userID int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO likes (film_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		filmID, userID,
	)
	if err != nil {
		logger.Log(ctx).Error(ctx, "error adding like",
			zap.String("repository", "like"), zap.String("method", "Add"), zap.Error(err))
		return fmt.Errorf("error adding like: %w", err)
	}
	return nil
}

// Remove снимает отметку, если она есть.
func (r *LikeRepository) Remove(ctx context.Context, filmID, userID int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM likes WHERE film_id = $1 AND user_id = $2`,
		filmID, userID,
	)
	if err != nil {
		logger.Log(ctx).Error(ctx, "error removing like",
			zap.String("repository", "like"), zap.String("method", "Remove"), zap.Error(err))
		return fmt.Errorf("error removing like: %w", err)
	}
	return nil
}

// RemoveAllByFilm снимает все отметки фильма.
func (r *LikeRepository) RemoveAllByFilm(ctx context.Context, filmID int64) error {
	if _, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM likes WHERE film_id = $1`, filmID); err != nil {
		return fmt.Errorf("error removing film likes: %w", err)
	}
	return nil
}

// RemoveAllByUser снимает все отметки пользователя.
func (r *LikeRepository) RemoveAllByUser(ctx context.Context, userID int64) error {
	if _, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM likes WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error removing user likes: %w", err)
	}
	return nil
}

// CountByFilm возвращает число отметок фильма.
func (r *LikeRepository) CountByFilm(ctx context.Context, filmID int64) (int, error) {
	var count int
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM likes WHERE film_id = $1`, filmID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting likes: %w", err)
	}
	return count, nil
}

// Counts возвращает число отметок по фильмам, у которых они есть.
func (r *LikeRepository) Counts(ctx context.Context) (map[int64]int, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT film_id, COUNT(*) FROM likes GROUP BY film_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("error counting likes: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var filmID int64
		var count int
		if err := rows.Scan(&filmID, &count); err != nil {
			return nil, fmt.Errorf("error scanning like count: %w", err)
		}
		counts[filmID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating like counts: %w", err)
	}
	return counts, nil
}

// TopPopular строит рейтинг популярности одним агрегирующим запросом.
func (r *LikeRepository) TopPopular(ctx context.Context, count int) ([]*entities.Film, error) {
	if count <= 0 {
		return []*entities.Film{}, nil
	}

	log := logger.Log(ctx).With(zap.String("repository", "like"), zap.String("method", "TopPopular"))
	q := conn(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+filmColumns+`
         FROM films f
         JOIN ratings r ON r.id = f.rating_id
         LEFT JOIN likes l ON l.film_id = f.id
         GROUP BY f.id, r.id
         ORDER BY COUNT(l.user_id) DESC, f.id ASC
         LIMIT $1`,
		count,
	)
	if err != nil {
		log.Error(ctx, "error querying popular films", zap.Error(err))
		return nil, fmt.Errorf("error querying popular films: %w", err)
	}

	films, err := scanFilms(rows)
	if err != nil {
		log.Error(ctx, "error scanning popular films", zap.Error(err))
		return nil, err
	}
	if err := attachGenres(ctx, q, films); err != nil {
		return nil, err
	}
	return films, nil
}
