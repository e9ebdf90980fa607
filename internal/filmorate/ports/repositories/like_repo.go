package repositories

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// LikeRepository определяет интерфейс хранения отметок "нравится".
// Удаление отсутствующих отметок не является ошибкой.
type LikeRepository interface {
	Add(ctx context.Context, filmID, userID int64) error

	Remove(ctx context.Context, filmID, userID int64) error

	RemoveAllByFilm(ctx context.Context, filmID int64) error

	RemoveAllByUser(ctx context.Context, userID int64) error

	CountByFilm(ctx context.Context, filmID int64) (int, error)

	// Counts возвращает число отметок по фильмам. Фильмы без отметок могут отсутствовать.
	Counts(ctx context.Context) (map[int64]int, error)
}

// PopularityRanker - необязательная возможность хранилища отметок
// построить рейтинг популярности на своей стороне.
type PopularityRanker interface {
	// TopPopular возвращает до count фильмов по убыванию числа отметок, при равенстве по возрастанию id.
	TopPopular(ctx context.Context, count int) ([]*entities.Film, error)
}
