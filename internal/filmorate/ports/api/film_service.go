// Package api описывает порты сервисного слоя, которые использует HTTP-адаптер.
package api

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// FilmUseCase определяет основной порт для операций с фильмами и отметками.
type FilmUseCase interface {
	ListFilms(ctx context.Context) ([]*entities.Film, error)

	GetFilm(ctx context.Context, id int64) (*entities.Film, error)

	CreateFilm(ctx context.Context, film *entities.Film) (*entities.Film, error)

	UpdateFilm(ctx context.Context, film *entities.Film) (*entities.Film, error)

	DeleteFilm(ctx context.Context, id int64) error

	Like(ctx context.Context, filmID, userID int64) error

	Unlike(ctx context.Context, filmID, userID int64) error

	CountLikes(ctx context.Context, filmID int64) (int, error)

	TopPopular(ctx context.Context, count int) ([]*entities.Film, error)
}
