package repositories

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// FriendshipRepository определяет интерфейс хранения направленных ребер дружбы.
type FriendshipRepository interface {
	// Find возвращает ребро userID -> friendID или (nil, nil).
	Find(ctx context.Context, userID, friendID int64) (*entities.Friendship, error)

	Upsert(ctx context.Context, edge entities.Friendship) error

	// RemovePair удаляет ребра в обоих направлениях.
	RemovePair(ctx context.Context, userID, friendID int64) error

	RemoveAllByUser(ctx context.Context, userID int64) error

	// ConfirmedFriendIDs возвращает id друзей по подтвержденным ребрам в порядке возрастания.
	ConfirmedFriendIDs(ctx context.Context, userID int64) ([]int64, error)
}
