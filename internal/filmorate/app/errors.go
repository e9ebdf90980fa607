// Package app реализует бизнес-логику фильмотеки: фильмы и отметки,
// пользователей и граф дружбы, справочники.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/pkg/logger"
)

func filmNotFound(id int64) error {
	return fmt.Errorf("%w: id=%d", entities.ErrFilmNotFound, id)
}

func userNotFound(id int64) error {
	return fmt.Errorf("%w: id=%d", entities.ErrUserNotFound, id)
}

func genreNotFound(id int) error {
	return fmt.Errorf("%w: id=%d", entities.ErrGenreNotFound, id)
}

func ratingNotFound(id int) error {
	return fmt.Errorf("%w: id=%d", entities.ErrRatingNotFound, id)
}

// logFailure пишет ошибки ввода на уровне debug, остальные на уровне error.
func logFailure(ctx context.Context, log *logger.Logger, msg string, err error) {
	if entities.IsValidation(err) || entities.IsNotFound(err) {
		log.Debug(ctx, msg, zap.Error(err))
		return
	}
	log.Error(ctx, msg, zap.Error(err))
}
