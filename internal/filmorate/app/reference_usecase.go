package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

// ReferenceUseCase предоставляет справочники жанров и рейтингов только для чтения.
type ReferenceUseCase struct {
	genres  repositories.GenreRepository
	ratings repositories.RatingRepository
}

// NewReferenceUseCase создает новый экземпляр ReferenceUseCase.
func NewReferenceUseCase(genres repositories.GenreRepository, ratings repositories.RatingRepository) *ReferenceUseCase {
	return &ReferenceUseCase{genres: genres, ratings: ratings}
}

// ListGenres возвращает жанры по возрастанию id.
func (uc *ReferenceUseCase) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	genres, err := uc.genres.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing genres: %w", err)
	}
	return genres, nil
}

// GetGenre возвращает жанр или ошибку вида NotFound.
func (uc *ReferenceUseCase) GetGenre(ctx context.Context, id int) (*entities.Genre, error) {
	genre, err := uc.genres.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding genre: %w", err)
	}
	if genre == nil {
		logger.Log(ctx).Debug(ctx, "genre not found", zap.String("method", "GetGenre"), zap.Int("genreID", id))
		return nil, genreNotFound(id)
	}
	return genre, nil
}

// ListRatings возвращает рейтинги по возрастанию id.
func (uc *ReferenceUseCase) ListRatings(ctx context.Context) ([]entities.Rating, error) {
	ratings, err := uc.ratings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing ratings: %w", err)
	}
	return ratings, nil
}

// GetRating возвращает рейтинг или ошибку вида NotFound.
func (uc *ReferenceUseCase) GetRating(ctx context.Context, id int) (*entities.Rating, error) {
	rating, err := uc.ratings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingRating, err)
	}
	if rating == nil {
		logger.Log(ctx).Debug(ctx, "rating not found", zap.String("method", "GetRating"), zap.Int("ratingID", id))
		return nil, ratingNotFound(id)
	}
	return rating, nil
}
