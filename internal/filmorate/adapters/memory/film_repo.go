package memory

import (
	"cmp"
	"context"
	"slices"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

// FilmRepository реализует repositories.FilmRepository в памяти.
type FilmRepository struct {
	s *Storage
}

// NewFilmRepository создает репозиторий фильмов поверх хранилища.
func NewFilmRepository(s *Storage) repositories.FilmRepository {
	return &FilmRepository{s: s}
}

// Create сохраняет новый фильм и присваивает ему идентификатор.
func (r *FilmRepository) Create(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	var created *entities.Film
	err := r.s.write(ctx, func() error {
		r.s.lastFilmID++
		stored := normalizeFilm(film)
		stored.ID = r.s.lastFilmID
		r.s.putFilm(stored)
		created = r.s.decorate(stored)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Debug(ctx, "film created",
		zap.String("method", "memory.FilmRepository.Create"), zap.Int64("filmID", created.ID))
	return created, nil
}

// Update заменяет сохраненный фильм. Несуществующий фильм не создается.
func (r *FilmRepository) Update(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	var updated *entities.Film
	err := r.s.write(ctx, func() error {
		if _, ok := r.s.data.films[film.ID]; !ok {
			return entities.ErrFilmNotFound
		}
		stored := normalizeFilm(film)
		r.s.putFilm(stored)
		updated = r.s.decorate(stored)
		return nil
	})
	if err != nil {
		logger.Log(ctx).Debug(ctx, "film not found",
			zap.String("method", "memory.FilmRepository.Update"), zap.Int64("filmID", film.ID))
		return nil, err
	}
	return updated, nil
}

// FindByID возвращает фильм или (nil, nil), если его нет.
func (r *FilmRepository) FindByID(ctx context.Context, id int64) (*entities.Film, error) {
	var found *entities.Film
	r.s.read(ctx, func() {
		if f, ok := r.s.data.films[id]; ok {
			found = r.s.decorate(f)
		}
	})
	return found, nil
}

// List возвращает все фильмы по возрастанию id.
func (r *FilmRepository) List(ctx context.Context) ([]*entities.Film, error) {
	var films []*entities.Film
	r.s.read(ctx, func() {
		films = make([]*entities.Film, 0, len(r.s.data.films))
		for _, f := range r.s.data.films {
			films = append(films, r.s.decorate(f))
		}
	})
	slices.SortFunc(films, func(a, b *entities.Film) int { return cmp.Compare(a.ID, b.ID) })
	return films, nil
}

// Delete удаляет фильм вместе с его отметками.
func (r *FilmRepository) Delete(ctx context.Context, id int64) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.data.films[id]; !ok {
			return entities.ErrFilmNotFound
		}
		r.s.deleteFilm(id)
		r.s.removeFilmLikes(id)
		return nil
	})
}

// normalizeFilm готовит копию фильма к хранению: дата без времени суток,
// жанры без повторов по возрастанию id.
func normalizeFilm(film *entities.Film) *entities.Film {
	stored := film.Clone()
	stored.ReleaseDate = entities.DateOnly(stored.ReleaseDate)
	stored.Genres = entities.NormalizeGenres(stored.Genres)
	return stored
}
