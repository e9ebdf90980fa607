package api

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// ReferenceUseCase определяет порт справочников жанров и рейтингов.
type ReferenceUseCase interface {
	ListGenres(ctx context.Context) ([]entities.Genre, error)

	GetGenre(ctx context.Context, id int) (*entities.Genre, error)

	ListRatings(ctx context.Context) ([]entities.Rating, error)

	GetRating(ctx context.Context, id int) (*entities.Rating, error)
}
