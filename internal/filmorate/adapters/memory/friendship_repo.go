package memory

import (
	"context"
	"slices"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

// FriendshipRepository реализует repositories.FriendshipRepository в памяти.
type FriendshipRepository struct {
	s *Storage
}

// NewFriendshipRepository создает репозиторий дружбы поверх хранилища.
func NewFriendshipRepository(s *Storage) repositories.FriendshipRepository {
	return &FriendshipRepository{s: s}
}

// Find возвращает ребро userID -> friendID или (nil, nil).
func (r *FriendshipRepository) Find(ctx context.Context, userID, friendID int64) (*entities.Friendship, error) {
	var edge *entities.Friendship
	r.s.read(ctx, func() {
		if status, ok := r.s.data.friendships[edgeKey{userID: userID, friendID: friendID}]; ok {
			edge = &entities.Friendship{UserID: userID, FriendID: friendID, Status: status}
		}
	})
	return edge, nil
}

// Upsert создает ребро или меняет его статус.
func (r *FriendshipRepository) Upsert(ctx context.Context, edge entities.Friendship) error {
	if edge.UserID == edge.FriendID {
		return entities.ErrSelfFriendship
	}
	if !edge.Status.Valid() {
		return entities.ErrInvalidStatus
	}
	return r.s.write(ctx, func() error {
		r.s.putEdge(edgeKey{userID: edge.UserID, friendID: edge.FriendID}, edge.Status)
		return nil
	})
}

// RemovePair удаляет ребра в обоих направлениях.
func (r *FriendshipRepository) RemovePair(ctx context.Context, userID, friendID int64) error {
	return r.s.write(ctx, func() error {
		r.s.deleteEdge(edgeKey{userID: userID, friendID: friendID})
		r.s.deleteEdge(edgeKey{userID: friendID, friendID: userID})
		return nil
	})
}

// RemoveAllByUser удаляет все ребра, где участвует пользователь.
func (r *FriendshipRepository) RemoveAllByUser(ctx context.Context, userID int64) error {
	return r.s.write(ctx, func() error {
		r.s.removeUserEdges(userID)
		return nil
	})
}

// ConfirmedFriendIDs возвращает id друзей по подтвержденным ребрам по возрастанию.
func (r *FriendshipRepository) ConfirmedFriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := make([]int64, 0)
	r.s.read(ctx, func() {
		for key, status := range r.s.data.friendships {
			if key.userID == userID && status == entities.FriendshipConfirmed {
				ids = append(ids, key.friendID)
			}
		}
	})
	slices.Sort(ids)
	return ids, nil
}
