package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

const (
	methodListFilms  = "ListFilms"
	methodGetFilm    = "GetFilm"
	methodCreateFilm = "CreateFilm"
	methodUpdateFilm = "UpdateFilm"
	methodDeleteFilm = "DeleteFilm"
	methodLike       = "Like"
	methodUnlike     = "Unlike"
	methodCountLikes = "CountLikes"
	methodTopPopular = "TopPopular"

	msgFilmCreated     = "film created"
	msgFilmUpdated     = "film updated"
	msgFilmDeleted     = "film deleted with its likes"
	msgFilmLiked       = "film liked"
	msgFilmUnliked     = "like removed"
	msgRankedInStorage = "popularity ranked by storage"
	msgRankedInMemory  = "popularity ranked in memory"

	msgErrCreateFilm = "failed to create film"
	msgErrUpdateFilm = "failed to update film"
	msgErrDeleteFilm = "failed to delete film"
	msgErrLike       = "failed to like film"
	msgErrUnlike     = "failed to remove like"
	msgErrTopPopular = "failed to rank films"

	errCtxListingFilms   = "listing films"
	errCtxFindingFilm    = "finding film"
	errCtxCreatingFilm   = "creating film"
	errCtxUpdatingFilm   = "updating film"
	errCtxDeletingFilm   = "deleting film"
	errCtxRemovingLikes  = "removing film likes"
	errCtxFindingRating  = "finding rating"
	errCtxFindingGenres  = "finding genres"
	errCtxAddingLike     = "adding like"
	errCtxRemovingLike   = "removing like"
	errCtxCountingLikes  = "counting likes"
	errCtxRankingStorage = "ranking popular films in storage"
)

// FilmUseCase представляет бизнес-логику работы с фильмами и отметками.
type FilmUseCase struct {
	films   repositories.FilmRepository
	users   repositories.UserRepository
	likes   repositories.LikeRepository
	genres  repositories.GenreRepository
	ratings repositories.RatingRepository
	tx      repositories.Transactor
	ranker  repositories.PopularityRanker
}

// NewFilmUseCase создает новый экземпляр FilmUseCase. Если хранилище отметок
// умеет строить рейтинг популярности, используется его реализация.
func NewFilmUseCase(
	films repositories.FilmRepository,
	users repositories.UserRepository,
	likes repositories.LikeRepository,
	genres repositories.GenreRepository,
	ratings repositories.RatingRepository,
	tx repositories.Transactor,
) *FilmUseCase {
	uc := &FilmUseCase{
		films:   films,
		users:   users,
		likes:   likes,
		genres:  genres,
		ratings: ratings,
		tx:      tx,
	}
	if ranker, ok := likes.(repositories.PopularityRanker); ok {
		uc.ranker = ranker
	}
	return uc
}

// ListFilms возвращает все фильмы по возрастанию id.
func (uc *FilmUseCase) ListFilms(ctx context.Context) ([]*entities.Film, error) {
	films, err := uc.films.List(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to list films", zap.String("method", methodListFilms), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingFilms, err)
	}
	return films, nil
}

// GetFilm возвращает фильм или ошибку вида NotFound.
func (uc *FilmUseCase) GetFilm(ctx context.Context, id int64) (*entities.Film, error) {
	film, err := uc.getFilmOrFail(ctx, id)
	if err != nil {
		logFailure(ctx, logger.Log(ctx).With(zap.String("method", methodGetFilm)), "failed to get film", err)
		return nil, err
	}
	return film, nil
}

// CreateFilm проверяет и сохраняет новый фильм вместе с жанрами.
func (uc *FilmUseCase) CreateFilm(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateFilm))

	candidate := film.Clone()
	if err := uc.validateFilm(ctx, candidate); err != nil {
		logFailure(ctx, log, msgErrCreateFilm, err)
		return nil, err
	}

	var created *entities.Film
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = uc.films.Create(ctx, candidate)
		return err
	})
	if err != nil {
		log.Error(ctx, msgErrCreateFilm, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingFilm, err)
	}

	log.Info(ctx, msgFilmCreated, zap.Int64("filmID", created.ID))
	return created, nil
}

// UpdateFilm проверяет фильм и заменяет сохраненную версию вместе с набором жанров.
func (uc *FilmUseCase) UpdateFilm(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateFilm), zap.Int64("filmID", film.ID))

	candidate := film.Clone()
	if err := uc.validateFilm(ctx, candidate); err != nil {
		logFailure(ctx, log, msgErrUpdateFilm, err)
		return nil, err
	}

	var updated *entities.Film
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = uc.films.Update(ctx, candidate)
		return err
	})
	if err != nil {
		logFailure(ctx, log, msgErrUpdateFilm, err)
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingFilm, err)
	}

	log.Info(ctx, msgFilmUpdated)
	return updated, nil
}

// DeleteFilm удаляет фильм и его отметки в одной единице работы.
// Отметки снимаются последним шагом: внешнее хранилище отметок не участвует
// в откате, поэтому к нему обращаемся только после успешного удаления фильма.
func (uc *FilmUseCase) DeleteFilm(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteFilm), zap.Int64("filmID", id))

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.getFilmOrFail(ctx, id); err != nil {
			return err
		}
		if err := uc.films.Delete(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", errCtxDeletingFilm, err)
		}
		if err := uc.likes.RemoveAllByFilm(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", errCtxRemovingLikes, err)
		}
		return nil
	})
	if err != nil {
		logFailure(ctx, log, msgErrDeleteFilm, err)
		return err
	}

	log.Info(ctx, msgFilmDeleted)
	return nil
}

// Like ставит отметку пользователя фильму. Повторная отметка не является ошибкой.
func (uc *FilmUseCase) Like(ctx context.Context, filmID, userID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodLike), zap.Int64("filmID", filmID), zap.Int64("userID", userID))

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.ensureEdgeEnds(ctx, filmID, userID); err != nil {
			return err
		}
		if err := uc.likes.Add(ctx, filmID, userID); err != nil {
			return fmt.Errorf("%s: %w", errCtxAddingLike, err)
		}
		return nil
	})
	if err != nil {
		logFailure(ctx, log, msgErrLike, err)
		return err
	}

	log.Info(ctx, msgFilmLiked)
	return nil
}

// Unlike снимает отметку. Отсутствие отметки не является ошибкой.
func (uc *FilmUseCase) Unlike(ctx context.Context, filmID, userID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodUnlike), zap.Int64("filmID", filmID), zap.Int64("userID", userID))

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.ensureEdgeEnds(ctx, filmID, userID); err != nil {
			return err
		}
		if err := uc.likes.Remove(ctx, filmID, userID); err != nil {
			return fmt.Errorf("%s: %w", errCtxRemovingLike, err)
		}
		return nil
	})
	if err != nil {
		logFailure(ctx, log, msgErrUnlike, err)
		return err
	}

	log.Info(ctx, msgFilmUnliked)
	return nil
}

// CountLikes возвращает число отметок существующего фильма.
func (uc *FilmUseCase) CountLikes(ctx context.Context, filmID int64) (int, error) {
	if _, err := uc.getFilmOrFail(ctx, filmID); err != nil {
		logFailure(ctx, logger.Log(ctx).With(zap.String("method", methodCountLikes)), "failed to count likes", err)
		return 0, err
	}
	n, err := uc.likes.CountByFilm(ctx, filmID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", errCtxCountingLikes, err)
	}
	return n, nil
}

// TopPopular возвращает до count самых популярных фильмов.
// При count <= 0 результат пуст.
func (uc *FilmUseCase) TopPopular(ctx context.Context, count int) ([]*entities.Film, error) {
	log := logger.Log(ctx).With(zap.String("method", methodTopPopular), zap.Int("count", count))

	if count <= 0 {
		return []*entities.Film{}, nil
	}

	if uc.ranker != nil {
		films, err := uc.ranker.TopPopular(ctx, count)
		if err != nil {
			log.Error(ctx, msgErrTopPopular, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxRankingStorage, err)
		}
		log.Debug(ctx, msgRankedInStorage, zap.Int("found", len(films)))
		return films, nil
	}

	films, err := uc.films.List(ctx)
	if err != nil {
		log.Error(ctx, msgErrTopPopular, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingFilms, err)
	}
	counts, err := uc.likes.Counts(ctx)
	if err != nil {
		log.Error(ctx, msgErrTopPopular, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCountingLikes, err)
	}

	ranked := RankByPopularity(films, counts, count)
	log.Debug(ctx, msgRankedInMemory, zap.Int("found", len(ranked)))
	return ranked, nil
}

func (uc *FilmUseCase) getFilmOrFail(ctx context.Context, id int64) (*entities.Film, error) {
	film, err := uc.films.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingFilm, err)
	}
	if film == nil {
		return nil, filmNotFound(id)
	}
	return film, nil
}

// ensureEdgeEnds проверяет пользователя, затем фильм.
func (uc *FilmUseCase) ensureEdgeEnds(ctx context.Context, filmID, userID int64) error {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	if user == nil {
		return userNotFound(userID)
	}
	_, err = uc.getFilmOrFail(ctx, filmID)
	return err
}

// validateFilm разрешает рейтинг и жанры через справочники, затем проверяет поля.
// Жанры приводятся к множеству, отсортированному по id, с названиями из справочника.
func (uc *FilmUseCase) validateFilm(ctx context.Context, film *entities.Film) error {
	rating, err := uc.ratings.FindByID(ctx, film.Rating.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxFindingRating, err)
	}
	if rating == nil {
		return ratingNotFound(film.Rating.ID)
	}
	film.Rating = *rating

	film.Genres = entities.NormalizeGenres(film.Genres)
	if len(film.Genres) > 0 {
		ids := film.GenreIDs()
		found, err := uc.genres.FindByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxFindingGenres, err)
		}
		if missing, ok := firstMissingGenre(ids, found); ok {
			return genreNotFound(missing)
		}
		film.Genres = found
	}

	return film.Validate()
}

func firstMissingGenre(ids []int, found []entities.Genre) (int, bool) {
	known := make(map[int]struct{}, len(found))
	for _, g := range found {
		known[g.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return id, true
		}
	}
	return 0, false
}
