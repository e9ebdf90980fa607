package api

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// UserUseCase определяет порт для пользователей и графа дружбы.
type UserUseCase interface {
	ListUsers(ctx context.Context) ([]*entities.User, error)

	GetUser(ctx context.Context, id int64) (*entities.User, error)

	CreateUser(ctx context.Context, user *entities.User) (*entities.User, error)

	UpdateUser(ctx context.Context, user *entities.User) (*entities.User, error)

	DeleteUser(ctx context.Context, id int64) error

	AddFriend(ctx context.Context, userID, friendID int64) error

	RemoveFriend(ctx context.Context, userID, friendID int64) error

	GetFriends(ctx context.Context, userID int64) ([]*entities.User, error)

	GetCommonFriends(ctx context.Context, userID, otherID int64) ([]*entities.User, error)
}
