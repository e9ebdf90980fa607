package memory

import (
	"cmp"
	"context"
	"slices"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

// GenreRepository реализует repositories.GenreRepository в памяти.
type GenreRepository struct {
	s *Storage
}

// NewGenreRepository создает справочник жанров поверх хранилища.
func NewGenreRepository(s *Storage) repositories.GenreRepository {
	return &GenreRepository{s: s}
}

// List возвращает жанры по возрастанию id.
func (r *GenreRepository) List(ctx context.Context) ([]entities.Genre, error) {
	var genres []entities.Genre
	r.s.read(ctx, func() {
		genres = make([]entities.Genre, 0, len(r.s.genres))
		for _, g := range r.s.genres {
			genres = append(genres, g)
		}
	})
	slices.SortFunc(genres, func(a, b entities.Genre) int { return cmp.Compare(a.ID, b.ID) })
	return genres, nil
}

// FindByID возвращает жанр или (nil, nil).
func (r *GenreRepository) FindByID(ctx context.Context, id int) (*entities.Genre, error) {
	var found *entities.Genre
	r.s.read(ctx, func() {
		if g, ok := r.s.genres[id]; ok {
			found = &g
		}
	})
	return found, nil
}

// FindByIDs возвращает найденные жанры по возрастанию id.
func (r *GenreRepository) FindByIDs(ctx context.Context, ids []int) ([]entities.Genre, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	genres := make([]entities.Genre, 0, len(sorted))
	r.s.read(ctx, func() {
		for _, id := range sorted {
			if g, ok := r.s.genres[id]; ok {
				genres = append(genres, g)
			}
		}
	})
	return genres, nil
}

// RatingRepository реализует repositories.RatingRepository в памяти.
type RatingRepository struct {
	s *Storage
}

// NewRatingRepository создает справочник рейтингов поверх хранилища.
func NewRatingRepository(s *Storage) repositories.RatingRepository {
	return &RatingRepository{s: s}
}

// List возвращает рейтинги по возрастанию id.
func (r *RatingRepository) List(ctx context.Context) ([]entities.Rating, error) {
	var ratings []entities.Rating
	r.s.read(ctx, func() {
		ratings = make([]entities.Rating, 0, len(r.s.ratings))
		for _, rt := range r.s.ratings {
			ratings = append(ratings, rt)
		}
	})
	slices.SortFunc(ratings, func(a, b entities.Rating) int { return cmp.Compare(a.ID, b.ID) })
	return ratings, nil
}

// FindByID возвращает рейтинг или (nil, nil).
func (r *RatingRepository) FindByID(ctx context.Context, id int) (*entities.Rating, error) {
	var found *entities.Rating
	r.s.read(ctx, func() {
		if rt, ok := r.s.ratings[id]; ok {
			found = &rt
		}
	})
	return found, nil
}
