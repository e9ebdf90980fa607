package app_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"filmorate/internal/filmorate/domain/entities"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockFilmRepository struct {
	mock.Mock
}

func (m *mockFilmRepository) Create(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	args := m.Called(ctx, film)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Film), args.Error(1)
}

func (m *mockFilmRepository) Update(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	args := m.Called(ctx, film)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Film), args.Error(1)
}

func (m *mockFilmRepository) FindByID(ctx context.Context, id int64) (*entities.Film, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Film), args.Error(1)
}

func (m *mockFilmRepository) List(ctx context.Context) ([]*entities.Film, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Film), args.Error(1)
}

func (m *mockFilmRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockLikeRepository struct {
	mock.Mock
}

func (m *mockLikeRepository) Add(ctx context.Context, filmID, userID int64) error {
	return m.Called(ctx, filmID, userID).Error(0)
}

func (m *mockLikeRepository) Remove(ctx context.Context, filmID, userID int64) error {
	return m.Called(ctx, filmID, userID).Error(0)
}

func (m *mockLikeRepository) RemoveAllByFilm(ctx context.Context, filmID int64) error {
	return m.Called(ctx, filmID).Error(0)
}

func (m *mockLikeRepository) RemoveAllByUser(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockLikeRepository) CountByFilm(ctx context.Context, filmID int64) (int, error) {
	args := m.Called(ctx, filmID)
	return args.Int(0), args.Error(1)
}

func (m *mockLikeRepository) Counts(ctx context.Context) (map[int64]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

// mockRankingLikeRepository дополнительно умеет строить рейтинг.
type mockRankingLikeRepository struct {
	mockLikeRepository
}

func (m *mockRankingLikeRepository) TopPopular(ctx context.Context, count int) ([]*entities.Film, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Film), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entities.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockFriendshipRepository struct {
	mock.Mock
}

func (m *mockFriendshipRepository) Find(ctx context.Context, userID, friendID int64) (*entities.Friendship, error) {
	args := m.Called(ctx, userID, friendID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Friendship), args.Error(1)
}

func (m *mockFriendshipRepository) Upsert(ctx context.Context, edge entities.Friendship) error {
	return m.Called(ctx, edge).Error(0)
}

func (m *mockFriendshipRepository) RemovePair(ctx context.Context, userID, friendID int64) error {
	return m.Called(ctx, userID, friendID).Error(0)
}

func (m *mockFriendshipRepository) RemoveAllByUser(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockFriendshipRepository) ConfirmedFriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
