package repositories

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// UserRepository определяет интерфейс хранения пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	Update(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id int64) (*entities.User, error)

	// FindByIDs возвращает найденных пользователей по возрастанию id, отсутствующие пропускаются.
	FindByIDs(ctx context.Context, ids []int64) ([]*entities.User, error)

	List(ctx context.Context) ([]*entities.User, error)

	Delete(ctx context.Context, id int64) error
}
