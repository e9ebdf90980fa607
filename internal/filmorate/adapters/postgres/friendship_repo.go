package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

// FriendshipRepository реализует repositories.FriendshipRepository для работы с Postgres.
type FriendshipRepository struct {
	pool PgxPoolInterface
}

// NewFriendshipRepository создает новый экземпляр репозитория дружбы.
func NewFriendshipRepository(pool PgxPoolInterface) repositories.FriendshipRepository {
	return &FriendshipRepository{pool: pool}
}

// Find возвращает ребро userID -> friendID или (nil, nil).
func (r *FriendshipRepository) Find(ctx context.Context, userID, friendID int64) (*entities.Friendship, error) {
	var status string
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT status FROM friendships WHERE user_id = $1 AND friend_id = $2`,
		userID, friendID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying friendship: %w", err)
	}

	edge := &entities.Friendship{UserID: userID, FriendID: friendID, Status: entities.FriendshipStatus(status)}
	if !edge.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidStatus, status)
	}
	return edge, nil
}

// Upsert создает ребро или меняет его статус.
func (r *FriendshipRepository) Upsert(ctx context.Context, edge entities.Friendship) error {
	if !edge.Status.Valid() {
		return entities.ErrInvalidStatus
	}

	_, err := conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO friendships (user_id, friend_id, status)
         VALUES ($1, $2, $3)
         ON CONFLICT (user_id, friend_id) DO UPDATE SET status = EXCLUDED.status`,
		edge.UserID, edge.FriendID, string(edge.Status),
	)
	if err != nil {
		logger.Log(ctx).Error(ctx, "error saving friendship",
			zap.String("repository", "friendship"), zap.String("method", "Upsert"), zap.Error(err))
		return fmt.Errorf("error saving friendship: %w", err)
	}
	return nil
}

// RemovePair удаляет ребра в обоих направлениях.
func (r *FriendshipRepository) RemovePair(ctx context.Context, userID, friendID int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM friendships
         WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)`,
		userID, friendID,
	)
	if err != nil {
		return fmt.Errorf("error removing friendship: %w", err)
	}
	return nil
}

// RemoveAllByUser удаляет все ребра, где участвует пользователь.
func (r *FriendshipRepository) RemoveAllByUser(ctx context.Context, userID int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM friendships WHERE user_id = $1 OR friend_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("error removing user friendships: %w", err)
	}
	return nil
}

// ConfirmedFriendIDs возвращает id друзей по подтвержденным ребрам по возрастанию.
func (r *FriendshipRepository) ConfirmedFriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT friend_id FROM friendships
         WHERE user_id = $1 AND status = 'CONFIRMED'
         ORDER BY friend_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying friends: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning friend id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friends: %w", err)
	}
	return ids, nil
}
