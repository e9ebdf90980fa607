package memory

import (
	"cmp"
	"context"
	"slices"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

// UserRepository реализует repositories.UserRepository в памяти.
type UserRepository struct {
	s *Storage
}

// NewUserRepository создает репозиторий пользователей поверх хранилища.
func NewUserRepository(s *Storage) repositories.UserRepository {
	return &UserRepository{s: s}
}

// Create сохраняет нового пользователя и присваивает ему идентификатор.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	var created *entities.User
	err := r.s.write(ctx, func() error {
		r.s.lastUserID++
		stored := normalizeUser(user)
		stored.ID = r.s.lastUserID
		r.s.putUser(stored)
		created = stored.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Debug(ctx, "user created",
		zap.String("method", "memory.UserRepository.Create"), zap.Int64("userID", created.ID))
	return created, nil
}

// Update заменяет сохраненного пользователя.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	var updated *entities.User
	err := r.s.write(ctx, func() error {
		if _, ok := r.s.data.users[user.ID]; !ok {
			return entities.ErrUserNotFound
		}
		stored := normalizeUser(user)
		r.s.putUser(stored)
		updated = stored.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// FindByID возвращает пользователя или (nil, nil), если его нет.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	var found *entities.User
	r.s.read(ctx, func() {
		found = r.s.data.users[id].Clone()
	})
	return found, nil
}

// FindByIDs возвращает существующих пользователей из ids по возрастанию id.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entities.User, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	users := make([]*entities.User, 0, len(sorted))
	r.s.read(ctx, func() {
		for _, id := range sorted {
			if u, ok := r.s.data.users[id]; ok {
				users = append(users, u.Clone())
			}
		}
	})
	return users, nil
}

// List возвращает всех пользователей по возрастанию id.
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	r.s.read(ctx, func() {
		users = make([]*entities.User, 0, len(r.s.data.users))
		for _, u := range r.s.data.users {
			users = append(users, u.Clone())
		}
	})
	slices.SortFunc(users, func(a, b *entities.User) int { return cmp.Compare(a.ID, b.ID) })
	return users, nil
}

// Delete удаляет пользователя вместе с его ребрами дружбы и отметками.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.data.users[id]; !ok {
			return entities.ErrUserNotFound
		}
		r.s.deleteUser(id)
		r.s.removeUserEdges(id)
		r.s.removeUserLikes(id)
		return nil
	})
}

// normalizeUser готовит копию пользователя к хранению: день рождения без времени суток.
func normalizeUser(user *entities.User) *entities.User {
	stored := user.Clone()
	if stored.Birthday != nil {
		b := entities.DateOnly(*stored.Birthday)
		stored.Birthday = &b
	}
	return stored
}
