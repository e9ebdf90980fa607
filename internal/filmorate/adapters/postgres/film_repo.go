package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

const filmColumns = `f.id, f.name, f.description, f.release_date, f.duration, r.id, r.name`

// FilmRepository реализует интерфейс repositories.FilmRepository для работы с Postgres.
// Рейтинг и жанры материализуются при каждом чтении.
type FilmRepository struct {
	pool PgxPoolInterface
	tx   *Transactor
}

// NewFilmRepository создает новый экземпляр репозитория фильмов.
func NewFilmRepository(pool PgxPoolInterface) repositories.FilmRepository {
	return &FilmRepository{pool: pool, tx: NewTransactor(pool)}
}

// Create сохраняет фильм и его жанры в одной транзакции.
func (r *FilmRepository) Create(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "Create"))

	var created *entities.Film
	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		q := conn(ctx, r.pool)

		var id int64
		err := q.QueryRow(ctx,
			`INSERT INTO films (name, description, release_date, duration, rating_id)
             VALUES ($1, $2, $3, $4, $5)
             RETURNING id`,
			film.Name, film.Description, film.ReleaseDate, film.Duration, film.Rating.ID,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("error creating film: %w", err)
		}

		if err := insertFilmGenres(ctx, q, id, film.GenreIDs()); err != nil {
			return err
		}

		created, err = findFilm(ctx, q, id)
		return err
	})
	if err != nil {
		log.Error(ctx, "error creating film", zap.Error(err))
		return nil, err
	}

	log.Debug(ctx, "film created", zap.Int64("filmID", created.ID))
	return created, nil
}

// Update обновляет фильм и переписывает набор его жанров.
func (r *FilmRepository) Update(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "Update"))

	var updated *entities.Film
	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		q := conn(ctx, r.pool)

		result, err := q.Exec(ctx,
			`UPDATE films
             SET name = $2, description = $3, release_date = $4, duration = $5, rating_id = $6
             WHERE id = $1`,
			film.ID, film.Name, film.Description, film.ReleaseDate, film.Duration, film.Rating.ID,
		)
		if err != nil {
			return fmt.Errorf("error updating film: %w", err)
		}
		if result.RowsAffected() == 0 {
			return entities.ErrFilmNotFound
		}

		if _, err := q.Exec(ctx, `DELETE FROM film_genres WHERE film_id = $1`, film.ID); err != nil {
			return fmt.Errorf("error clearing film genres: %w", err)
		}
		if err := insertFilmGenres(ctx, q, film.ID, film.GenreIDs()); err != nil {
			return err
		}

		updated, err = findFilm(ctx, q, film.ID)
		return err
	})
	if err != nil {
		if entities.IsNotFound(err) {
			log.Debug(ctx, "film not found", zap.Int64("filmID", film.ID))
		} else {
			log.Error(ctx, "error updating film", zap.Error(err))
		}
		return nil, err
	}

	return updated, nil
}

// FindByID находит фильм по ID. Отсутствие фильма не является ошибкой.
func (r *FilmRepository) FindByID(ctx context.Context, id int64) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "FindByID"))

	film, err := findFilm(ctx, conn(ctx, r.pool), id)
	if err != nil {
		log.Error(ctx, "error finding film by id", zap.Error(err))
		return nil, err
	}
	if film == nil {
		log.Debug(ctx, "film not found", zap.Int64("filmID", id))
	}
	return film, nil
}

// List возвращает все фильмы по возрастанию id.
func (r *FilmRepository) List(ctx context.Context) ([]*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "List"))
	q := conn(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+filmColumns+`
         FROM films f
         JOIN ratings r ON r.id = f.rating_id
         ORDER BY f.id`,
	)
	if err != nil {
		log.Error(ctx, "error listing films", zap.Error(err))
		return nil, fmt.Errorf("error listing films: %w", err)
	}

	films, err := scanFilms(rows)
	if err != nil {
		log.Error(ctx, "error scanning films", zap.Error(err))
		return nil, err
	}

	if err := attachGenres(ctx, q, films); err != nil {
		log.Error(ctx, "error loading film genres", zap.Error(err))
		return nil, err
	}
	return films, nil
}

// Delete удаляет фильм. Жанры и отметки удаляются каскадно.
func (r *FilmRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "film"), zap.String("method", "Delete"))

	result, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM films WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting film", zap.Error(err))
		return fmt.Errorf("error deleting film: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "film not found", zap.Int64("filmID", id))
		return entities.ErrFilmNotFound
	}
	return nil
}

func insertFilmGenres(ctx context.Context, q querier, filmID int64, genreIDs []int) error {
	if len(genreIDs) == 0 {
		return nil
	}
	_, err := q.Exec(ctx,
		`INSERT INTO film_genres (film_id, genre_id)
         SELECT $1, unnest($2::int[])
         ON CONFLICT DO NOTHING`,
		filmID, genreIDs,
	)
	if err != nil {
		return fmt.Errorf("error inserting film genres: %w", err)
	}
	return nil
}

func findFilm(ctx context.Context, q querier, id int64) (*entities.Film, error) {
	var film entities.Film
	err := q.QueryRow(ctx,
		`SELECT `+filmColumns+`
         FROM films f
         JOIN ratings r ON r.id = f.rating_id
         WHERE f.id = $1`,
		id,
	).Scan(&film.ID, &film.Name, &film.Description, &film.ReleaseDate, &film.Duration, &film.Rating.ID, &film.Rating.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying film by id: %w", err)
	}

	if err := attachGenres(ctx, q, []*entities.Film{&film}); err != nil {
		return nil, err
	}
	return &film, nil
}

func scanFilms(rows pgx.Rows) ([]*entities.Film, error) {
	defer rows.Close()

	films := make([]*entities.Film, 0)
	for rows.Next() {
		var film entities.Film
		err := rows.Scan(&film.ID, &film.Name, &film.Description, &film.ReleaseDate, &film.Duration, &film.Rating.ID, &film.Rating.Name)
		if err != nil {
			return nil, fmt.Errorf("error scanning film: %w", err)
		}
		films = append(films, &film)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating films: %w", err)
	}
	return films, nil
}

// attachGenres загружает жанры всех фильмов одним запросом, отсортированными по id.
func attachGenres(ctx context.Context, q querier, films []*entities.Film) error {
	if len(films) == 0 {
		return nil
	}

	byID := make(map[int64]*entities.Film, len(films))
	ids := make([]int64, 0, len(films))
	for _, f := range films {
		byID[f.ID] = f
		ids = append(ids, f.ID)
	}

	rows, err := q.Query(ctx,
		`SELECT fg.film_id, g.id, g.name
         FROM film_genres fg
         JOIN genres g ON g.id = fg.genre_id
         WHERE fg.film_id = ANY($1)
         ORDER BY fg.film_id, g.id`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("error querying film genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var filmID int64
		var genre entities.Genre
		if err := rows.Scan(&filmID, &genre.ID, &genre.Name); err != nil {
			return fmt.Errorf("error scanning film genre: %w", err)
		}
		if f, ok := byID[filmID]; ok {
			f.Genres = append(f.Genres, genre)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating film genres: %w", err)
	}
	return nil
}
