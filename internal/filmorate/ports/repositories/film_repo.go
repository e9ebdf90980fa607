// Package repositories описывает контракты хранилищ фильмотеки.
// Каждое хранилище реализовано в памяти и в PostgreSQL.
package repositories

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// FilmRepository определяет интерфейс хранения фильмов.
// FindByID возвращает (nil, nil), если фильма нет.
type FilmRepository interface {
	Create(ctx context.Context, film *entities.Film) (*entities.Film, error)

	Update(ctx context.Context, film *entities.Film) (*entities.Film, error)

	FindByID(ctx context.Context, id int64) (*entities.Film, error)

	List(ctx context.Context) ([]*entities.Film, error)

	Delete(ctx context.Context, id int64) error
}
