package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

const (
	methodListUsers        = "ListUsers"
	methodGetUser          = "GetUser"
	methodCreateUser       = "CreateUser"
	methodUpdateUser       = "UpdateUser"
	methodDeleteUser       = "DeleteUser"
	methodAddFriend        = "AddFriend"
	methodRemoveFriend     = "RemoveFriend"
	methodGetFriends       = "GetFriends"
	methodGetCommonFriends = "GetCommonFriends"

	msgUserCreated          = "user created"
	msgUserUpdated          = "user updated"
	msgUserDeleted          = "user deleted with friendships and likes"
	msgFriendRequestSent    = "friend request sent"
	msgFriendshipConfirmed  = "friendship confirmed"
	msgFriendRequestPending = "friend request already pending"
	msgFriendRemoved        = "friendship removed"

	msgErrCreateUser    = "failed to create user"
	msgErrUpdateUser    = "failed to update user"
	msgErrDeleteUser    = "failed to delete user"
	msgErrAddFriend     = "failed to add friend"
	msgErrRemoveFriend  = "failed to remove friend"
	msgErrGetFriends    = "failed to get friends"
	msgErrCommonFriends = "failed to get common friends"

	errCtxListingUsers       = "listing users"
	errCtxFindingUser        = "finding user"
	errCtxCreatingUser       = "creating user"
	errCtxUpdatingUser       = "updating user"
	errCtxDeletingUser       = "deleting user"
	errCtxFindingFriendship  = "finding friendship"
	errCtxSavingFriendship   = "saving friendship"
	errCtxRemovingFriendship = "removing friendship"
	errCtxListingFriends     = "listing friends"
	errCtxRemovingUserLikes  = "removing user likes"
)

// UserUseCase представляет бизнес-логику пользователей и графа дружбы.
//
// Дружба хранится направленными ребрами. Запрос создает ребро PENDING,
// встречный запрос переводит оба ребра в CONFIRMED. Друзьями считаются
// только пользователи, связанные подтвержденным ребром.
type UserUseCase struct {
	users       repositories.UserRepository
	friendships repositories.FriendshipRepository
	likes       repositories.LikeRepository
	tx          repositories.Transactor
	now         func() time.Time
}

// NewUserUseCase создает новый экземпляр UserUseCase.
func NewUserUseCase(
	users repositories.UserRepository,
	friendships repositories.FriendshipRepository,
	likes repositories.LikeRepository,
	tx repositories.Transactor,
) *UserUseCase {
	return &UserUseCase{
		users:       users,
		friendships: friendships,
		likes:       likes,
		tx:          tx,
		now:         time.Now,
	}
}

// ListUsers возвращает всех пользователей по возрастанию id.
func (uc *UserUseCase) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to list users", zap.String("method", methodListUsers), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}
	return users, nil
}

// GetUser возвращает пользователя или ошибку вида NotFound.
func (uc *UserUseCase) GetUser(ctx context.Context, id int64) (*entities.User, error) {
	user, err := uc.getUserOrFail(ctx, id)
	if err != nil {
		logFailure(ctx, logger.Log(ctx).With(zap.String("method", methodGetUser)), "failed to get user", err)
		return nil, err
	}
	return user, nil
}

// CreateUser проверяет и сохраняет нового пользователя.
// Пустое имя заменяется логином.
func (uc *UserUseCase) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser))

	candidate := user.Clone()
	if err := candidate.Validate(uc.now()); err != nil {
		log.Debug(ctx, msgErrCreateUser, zap.Error(err))
		return nil, err
	}

	var created *entities.User
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = uc.users.Create(ctx, candidate)
		return err
	})
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.Int64("userID", created.ID))
	return created, nil
}

// UpdateUser проверяет и заменяет сохраненного пользователя.
func (uc *UserUseCase) UpdateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUser), zap.Int64("userID", user.ID))

	candidate := user.Clone()
	if err := candidate.Validate(uc.now()); err != nil {
		log.Debug(ctx, msgErrUpdateUser, zap.Error(err))
		return nil, err
	}

	var updated *entities.User
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = uc.users.Update(ctx, candidate)
		return err
	})
	if err != nil {
		logFailure(ctx, log, msgErrUpdateUser, err)
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgUserUpdated)
	return updated, nil
}

// DeleteUser удаляет пользователя, все ребра дружбы с его участием и его отметки.
// Отметки снимаются последними, после всех шагов, которые может откатить транзакция.
func (uc *UserUseCase) DeleteUser(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteUser), zap.Int64("userID", id))

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.getUserOrFail(ctx, id); err != nil {
			return err
		}
		if err := uc.friendships.RemoveAllByUser(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", errCtxRemovingFriendship, err)
		}
		if err := uc.users.Delete(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
		}
		if err := uc.likes.RemoveAllByUser(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", errCtxRemovingUserLikes, err)
		}
		return nil
	})
	if err != nil {
		logFailure(ctx, log, msgErrDeleteUser, err)
		return err
	}

	log.Info(ctx, msgUserDeleted)
	return nil
}

// AddFriend отправляет запрос дружбы от userID к friendID.
// Если встречный запрос уже есть, оба ребра подтверждаются.
func (uc *UserUseCase) AddFriend(ctx context.Context, userID, friendID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodAddFriend),
		zap.Int64("userID", userID), zap.Int64("friendID", friendID))

	if userID == friendID {
		log.Debug(ctx, msgErrAddFriend, zap.Error(entities.ErrSelfFriendship))
		return entities.ErrSelfFriendship
	}

	var outcome string
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.ensureUsers(ctx, userID, friendID); err != nil {
			return err
		}

		reverse, err := uc.friendships.Find(ctx, friendID, userID)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxFindingFriendship, err)
		}
		if reverse != nil {
			outcome = msgFriendshipConfirmed
			return uc.saveEdges(ctx,
				entities.Friendship{UserID: userID, FriendID: friendID, Status: entities.FriendshipConfirmed},
				entities.Friendship{UserID: friendID, FriendID: userID, Status: entities.FriendshipConfirmed},
			)
		}

		forward, err := uc.friendships.Find(ctx, userID, friendID)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxFindingFriendship, err)
		}
		if forward != nil {
			outcome = msgFriendRequestPending
			return nil
		}

		outcome = msgFriendRequestSent
		return uc.saveEdges(ctx, entities.Friendship{UserID: userID, FriendID: friendID, Status: entities.FriendshipPending})
	})
	if err != nil {
		logFailure(ctx, log, msgErrAddFriend, err)
		return err
	}

	log.Info(ctx, outcome)
	return nil
}

// RemoveFriend удаляет ребра между пользователями в обоих направлениях.
func (uc *UserUseCase) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodRemoveFriend),
		zap.Int64("userID", userID), zap.Int64("friendID", friendID))

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.ensureUsers(ctx, userID, friendID); err != nil {
			return err
		}
		if err := uc.friendships.RemovePair(ctx, userID, friendID); err != nil {
			return fmt.Errorf("%s: %w", errCtxRemovingFriendship, err)
		}
		return nil
	})
	if err != nil {
		logFailure(ctx, log, msgErrRemoveFriend, err)
		return err
	}

	log.Info(ctx, msgFriendRemoved)
	return nil
}

// GetFriends возвращает подтвержденных друзей пользователя по возрастанию id.
func (uc *UserUseCase) GetFriends(ctx context.Context, userID int64) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetFriends), zap.Int64("userID", userID))

	if _, err := uc.getUserOrFail(ctx, userID); err != nil {
		logFailure(ctx, log, msgErrGetFriends, err)
		return nil, err
	}

	ids, err := uc.friendships.ConfirmedFriendIDs(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrGetFriends, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingFriends, err)
	}

	friends, err := uc.users.FindByIDs(ctx, ids)
	if err != nil {
		log.Error(ctx, msgErrGetFriends, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	return friends, nil
}

// GetCommonFriends возвращает пересечение подтвержденных друзей двух пользователей по возрастанию id.
func (uc *UserUseCase) GetCommonFriends(ctx context.Context, userID, otherID int64) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetCommonFriends),
		zap.Int64("userID", userID), zap.Int64("otherID", otherID))

	if err := uc.ensureUsers(ctx, userID, otherID); err != nil {
		logFailure(ctx, log, msgErrCommonFriends, err)
		return nil, err
	}

	mine, err := uc.friendships.ConfirmedFriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingFriends, err)
	}
	theirs, err := uc.friendships.ConfirmedFriendIDs(ctx, otherID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingFriends, err)
	}

	common, err := uc.users.FindByIDs(ctx, intersect(mine, theirs))
	if err != nil {
		log.Error(ctx, msgErrCommonFriends, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	return common, nil
}

func (uc *UserUseCase) getUserOrFail(ctx context.Context, id int64) (*entities.User, error) {
	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	if user == nil {
		return nil, userNotFound(id)
	}
	return user, nil
}

func (uc *UserUseCase) ensureUsers(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		if _, err := uc.getUserOrFail(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (uc *UserUseCase) saveEdges(ctx context.Context, edges ...entities.Friendship) error {
	for _, edge := range edges {
		if err := uc.friendships.Upsert(ctx, edge); err != nil {
			return fmt.Errorf("%s: %w", errCtxSavingFriendship, err)
		}
	}
	return nil
}

func intersect(a, b []int64) []int64 {
	set := make(map[int64]struct{}, len(b))
	for _, id := range b {
		set[id] = struct{}{}
	}
	out := make([]int64, 0)
	for _, id := range a {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
