package repositories

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// GenreRepository определяет интерфейс справочника жанров.
type GenreRepository interface {
	List(ctx context.Context) ([]entities.Genre, error)

	FindByID(ctx context.Context, id int) (*entities.Genre, error)

	// FindByIDs возвращает найденные жанры по возрастанию id.
	FindByIDs(ctx context.Context, ids []int) ([]entities.Genre, error)
}

// RatingRepository определяет интерфейс справочника возрастных рейтингов.
type RatingRepository interface {
	List(ctx context.Context) ([]entities.Rating, error)

	FindByID(ctx context.Context, id int) (*entities.Rating, error)
}
