package memory

import (
	"context"

	"filmorate/internal/filmorate/ports/repositories"
)

// LikeRepository реализует repositories.LikeRepository в памяти.
type LikeRepository struct {
	s *Storage
}

// NewLikeRepository создает репозиторий отметок поверх хранилища.
func NewLikeRepository(s *Storage) repositories.LikeRepository {
	return &LikeRepository{s: s}
}

// Add ставит отметку. Повторная отметка ничего не меняет.
func (r *LikeRepository) Add(ctx context.Context, filmID, userID int64) error {
	return r.s.write(ctx, func() error {
		r.s.addLike(filmID, userID)
		return nil
	})
}

// Remove снимает отметку, если она есть.
func (r *LikeRepository) Remove(ctx context.Context, filmID, userID int64) error {
	return r.s.write(ctx, func() error {
		r.s.removeLike(filmID, userID)
		return nil
	})
}

// RemoveAllByFilm снимает все отметки фильма.
func (r *LikeRepository) RemoveAllByFilm(ctx context.Context, filmID int64) error {
	return r.s.write(ctx, func() error {
		r.s.removeFilmLikes(filmID)
		return nil
	})
}

// RemoveAllByUser снимает все отметки пользователя.
func (r *LikeRepository) RemoveAllByUser(ctx context.Context, userID int64) error {
	return r.s.write(ctx, func() error {
		r.s.removeUserLikes(userID)
		return nil
	})
}

// CountByFilm возвращает число отметок фильма.
func (r *LikeRepository) CountByFilm(ctx context.Context, filmID int64) (int, error) {
	var n int
	r.s.read(ctx, func() {
		n = len(r.s.data.likes[filmID])
	})
	return n, nil
}

// Counts возвращает число отметок по всем фильмам, у которых они есть.
func (r *LikeRepository) Counts(ctx context.Context) (map[int64]int, error) {
	var counts map[int64]int
	r.s.read(ctx, func() {
		counts = make(map[int64]int, len(r.s.data.likes))
		for filmID, set := range r.s.data.likes {
			counts[filmID] = len(set)
		}
	})
	return counts, nil
}
