package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

// GenreRepository реализует repositories.GenreRepository для работы с Postgres.
type GenreRepository struct {
	pool PgxPoolInterface
}

// NewGenreRepository создает справочник жанров.
func NewGenreRepository(pool PgxPoolInterface) repositories.GenreRepository {
	return &GenreRepository{pool: pool}
}

// List возвращает жанры по возрастанию id.
func (r *GenreRepository) List(ctx context.Context) ([]entities.Genre, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing genres: %w", err)
	}
	return scanReference(rows, func(id int, name string) entities.Genre {
		return entities.Genre{ID: id, Name: name}
	})
}

// FindByID возвращает жанр или (nil, nil).
func (r *GenreRepository) FindByID(ctx context.Context, id int) (*entities.Genre, error) {
	var genre entities.Genre
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT id, name FROM genres WHERE id = $1`, id).
		Scan(&genre.ID, &genre.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying genre by id: %w", err)
	}
	return &genre, nil
}

// FindByIDs возвращает найденные жанры по возрастанию id.
func (r *GenreRepository) FindByIDs(ctx context.Context, ids []int) ([]entities.Genre, error) {
	if len(ids) == 0 {
		return []entities.Genre{}, nil
	}
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT id, name FROM genres WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("error querying genres by ids: %w", err)
	}
	return scanReference(rows, func(id int, name string) entities.Genre {
		return entities.Genre{ID: id, Name: name}
	})
}

// RatingRepository реализует repositories.RatingRepository для работы с Postgres.
type RatingRepository struct {
	pool PgxPoolInterface
}

// NewRatingRepository создает справочник рейтингов.
func NewRatingRepository(pool PgxPoolInterface) repositories.RatingRepository {
	return &RatingRepository{pool: pool}
}

// List возвращает рейтинги по возрастанию id.
func (r *RatingRepository) List(ctx context.Context) ([]entities.Rating, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT id, name FROM ratings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing ratings: %w", err)
	}
	return scanReference(rows, func(id int, name string) entities.Rating {
		return entities.Rating{ID: id, Name: name}
	})
}

// FindByID возвращает рейтинг или (nil, nil).
func (r *RatingRepository) FindByID(ctx context.Context, id int) (*entities.Rating, error) {
	var rating entities.Rating
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT id, name FROM ratings WHERE id = $1`, id).
		Scan(&rating.ID, &rating.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying rating by id: %w", err)
	}
	return &rating, nil
}

func scanReference[T any](rows pgx.Rows, build func(id int, name string) T) ([]T, error) {
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("error scanning reference row: %w", err)
		}
		out = append(out, build(id, name))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reference rows: %w", err)
	}
	return out, nil
}
