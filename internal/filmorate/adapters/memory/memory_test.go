package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/adapters/memory"
	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

var errBoom = errors.New("boom")

func newFactory() *memory.RepositoryFactory {
	return memory.NewRepositoryFactory(memory.NewStorage())
}

func sampleFilm(name string) *entities.Film {
	return &entities.Film{
		Name:        name,
		Description: "описание",
		ReleaseDate: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		Duration:    90,
		Rating:      entities.Rating{ID: 3},
		Genres:      []entities.Genre{{ID: 2}, {ID: 1}, {ID: 2}},
	}
}

func TestFactoryImplementsContract(t *testing.T) {
	var _ repositories.Factory = newFactory()
}

func TestFilmRepository(t *testing.T) {
	ctx := context.Background()
	f := newFactory()
	repo := f.FilmRepository()

	t.Run("create assigns increasing ids and decorates references", func(t *testing.T) {
		first, err := repo.Create(ctx, sampleFilm("first"))
		require.NoError(t, err)
		second, err := repo.Create(ctx, sampleFilm("second"))
		require.NoError(t, err)

		assert.Greater(t, second.ID, first.ID)
		assert.Equal(t, entities.Rating{ID: 3, Name: "PG-13"}, first.Rating)
		assert.Equal(t, []entities.Genre{{ID: 1, Name: "Комедия"}, {ID: 2, Name: "Драма"}}, first.Genres)
	})

	t.Run("find missing film returns nil without error", func(t *testing.T) {
		film, err := repo.FindByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, film)
	})

	t.Run("returned film is a copy", func(t *testing.T) {
		created, err := repo.Create(ctx, sampleFilm("copy"))
		require.NoError(t, err)
		created.Name = "changed"
		created.Genres[0].ID = 6

		stored, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "copy", stored.Name)
		assert.Equal(t, 1, stored.Genres[0].ID)
	})

	t.Run("update of unknown film is not found", func(t *testing.T) {
		film := sampleFilm("ghost")
		film.ID = 12345

		_, err := repo.Update(ctx, film)
		require.ErrorIs(t, err, entities.ErrFilmNotFound)

		missing, err := repo.FindByID(ctx, 12345)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("update replaces genres", func(t *testing.T) {
		created, err := repo.Create(ctx, sampleFilm("update"))
		require.NoError(t, err)
		created.Genres = nil

		updated, err := repo.Update(ctx, created)
		require.NoError(t, err)
		assert.Empty(t, updated.Genres)
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		films, err := repo.List(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, films)
		for i := 1; i < len(films); i++ {
			assert.Less(t, films[i-1].ID, films[i].ID)
		}
	})

	t.Run("delete cascades to likes", func(t *testing.T) {
		created, err := repo.Create(ctx, sampleFilm("doomed"))
		require.NoError(t, err)
		require.NoError(t, f.LikeRepository().Add(ctx, created.ID, 1))

		require.NoError(t, repo.Delete(ctx, created.ID))

		count, err := f.LikeRepository().CountByFilm(ctx, created.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.ErrorIs(t, repo.Delete(ctx, created.ID), entities.ErrFilmNotFound)
	})
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	f := newFactory()
	repo := f.UserRepository()

	birthday := time.Date(1990, time.June, 1, 0, 0, 0, 0, time.UTC)
	a, err := repo.Create(ctx, &entities.User{Email: "a@x.ru", Login: "a", Name: "A", Birthday: &birthday})
	require.NoError(t, err)
	b, err := repo.Create(ctx, &entities.User{Email: "b@x.ru", Login: "b", Name: "B"})
	require.NoError(t, err)

	t.Run("find by ids skips missing and sorts", func(t *testing.T) {
		users, err := repo.FindByIDs(ctx, []int64{b.ID, 100, a.ID, b.ID})
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, a.ID, users[0].ID)
		assert.Equal(t, b.ID, users[1].ID)
	})

	t.Run("birthday is not shared with caller", func(t *testing.T) {
		*a.Birthday = a.Birthday.AddDate(5, 0, 0)

		stored, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 1990, stored.Birthday.Year())
	})

	t.Run("delete cascades to friendships and likes", func(t *testing.T) {
		require.NoError(t, f.FriendshipRepository().Upsert(ctx, entities.Friendship{UserID: a.ID, FriendID: b.ID, Status: entities.FriendshipConfirmed}))
		require.NoError(t, f.FriendshipRepository().Upsert(ctx, entities.Friendship{UserID: b.ID, FriendID: a.ID, Status: entities.FriendshipConfirmed}))
		require.NoError(t, f.LikeRepository().Add(ctx, 1, b.ID))

		require.NoError(t, repo.Delete(ctx, b.ID))

		ids, err := f.FriendshipRepository().ConfirmedFriendIDs(ctx, a.ID)
		require.NoError(t, err)
		assert.Empty(t, ids)
		count, err := f.LikeRepository().CountByFilm(ctx, 1)
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.ErrorIs(t, repo.Delete(ctx, b.ID), entities.ErrUserNotFound)
	})
}

func TestLikeRepository(t *testing.T) {
	ctx := context.Background()
	likes := newFactory().LikeRepository()

	require.NoError(t, likes.Add(ctx, 1, 10))
	require.NoError(t, likes.Add(ctx, 1, 10))
	require.NoError(t, likes.Add(ctx, 1, 11))
	require.NoError(t, likes.Add(ctx, 2, 10))

	count, err := likes.CountByFilm(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, likes.Remove(ctx, 3, 10))
	require.NoError(t, likes.RemoveAllByUser(ctx, 10))

	counts, err := likes.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 1}, counts)

	require.NoError(t, likes.RemoveAllByFilm(ctx, 1))
	counts, err = likes.Counts(ctx)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestFriendshipRepository(t *testing.T) {
	ctx := context.Background()
	repo := newFactory().FriendshipRepository()

	require.ErrorIs(t, repo.Upsert(ctx, entities.Friendship{UserID: 1, FriendID: 1, Status: entities.FriendshipPending}), entities.ErrSelfFriendship)
	require.ErrorIs(t, repo.Upsert(ctx, entities.Friendship{UserID: 1, FriendID: 2, Status: "FOLLOWS"}), entities.ErrInvalidStatus)

	require.NoError(t, repo.Upsert(ctx, entities.Friendship{UserID: 1, FriendID: 3, Status: entities.FriendshipConfirmed}))
	require.NoError(t, repo.Upsert(ctx, entities.Friendship{UserID: 1, FriendID: 2, Status: entities.FriendshipConfirmed}))
	require.NoError(t, repo.Upsert(ctx, entities.Friendship{UserID: 1, FriendID: 4, Status: entities.FriendshipPending}))

	edge, err := repo.Find(ctx, 1, 4)
	require.NoError(t, err)
	require.NotNil(t, edge)
	assert.Equal(t, entities.FriendshipPending, edge.Status)

	missing, err := repo.Find(ctx, 4, 1)
	require.NoError(t, err)
	assert.Nil(t, missing)

	ids, err := repo.ConfirmedFriendIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, ids)

	require.NoError(t, repo.RemovePair(ctx, 3, 1))
	ids, err = repo.ConfirmedFriendIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids)

	require.NoError(t, repo.RemoveAllByUser(ctx, 1))
	ids, err = repo.ConfirmedFriendIDs(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestReferenceRepositories(t *testing.T) {
	ctx := context.Background()
	f := newFactory()

	genres, err := f.GenreRepository().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, memory.DefaultGenres, genres)

	found, err := f.GenreRepository().FindByIDs(ctx, []int{6, 42, 1, 6})
	require.NoError(t, err)
	assert.Equal(t, []entities.Genre{{ID: 1, Name: "Комедия"}, {ID: 6, Name: "Боевик"}}, found)

	ratings, err := f.RatingRepository().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, memory.DefaultRatings, ratings)

	rating, err := f.RatingRepository().FindByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, &entities.Rating{ID: 4, Name: "R"}, rating)

	missing, err := f.RatingRepository().FindByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTransactor(t *testing.T) {
	ctx := context.Background()

	t.Run("failed unit of work is rolled back", func(t *testing.T) {
		f := newFactory()
		film, err := f.FilmRepository().Create(ctx, sampleFilm("keep"))
		require.NoError(t, err)
		require.NoError(t, f.LikeRepository().Add(ctx, film.ID, 1))

		err = f.Transactor().WithinTx(ctx, func(ctx context.Context) error {
			if err := f.LikeRepository().RemoveAllByFilm(ctx, film.ID); err != nil {
				return err
			}
			if err := f.FilmRepository().Delete(ctx, film.ID); err != nil {
				return err
			}
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)

		stored, err := f.FilmRepository().FindByID(ctx, film.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		count, err := f.LikeRepository().CountByFilm(ctx, film.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("nested unit of work joins the outer one", func(t *testing.T) {
		f := newFactory()

		err := f.Transactor().WithinTx(ctx, func(ctx context.Context) error {
			return f.Transactor().WithinTx(ctx, func(ctx context.Context) error {
				_, err := f.UserRepository().Create(ctx, &entities.User{Email: "n@x.ru", Login: "n", Name: "n"})
				return err
			})
		})
		require.NoError(t, err)

		users, err := f.UserRepository().List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("panic rolls back and propagates", func(t *testing.T) {
		f := newFactory()

		assert.Panics(t, func() {
			_ = f.Transactor().WithinTx(ctx, func(ctx context.Context) error {
				_, _ = f.UserRepository().Create(ctx, &entities.User{Email: "p@x.ru", Login: "p", Name: "p"})
				panic("boom")
			})
		})

		users, err := f.UserRepository().List(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestTransactorRollbackRestoresEveryChange(t *testing.T) {
	ctx := context.Background()
	f := newFactory()

	film, err := f.FilmRepository().Create(ctx, sampleFilm("before"))
	require.NoError(t, err)
	alice, err := f.UserRepository().Create(ctx, &entities.User{Email: "a@x.ru", Login: "alice", Name: "alice"})
	require.NoError(t, err)
	bob, err := f.UserRepository().Create(ctx, &entities.User{Email: "b@x.ru", Login: "bob", Name: "bob"})
	require.NoError(t, err)
	require.NoError(t, f.LikeRepository().Add(ctx, film.ID, alice.ID))
	require.NoError(t, f.FriendshipRepository().Upsert(ctx, entities.Friendship{
		UserID: alice.ID, FriendID: bob.ID, Status: entities.FriendshipPending,
	}))

	err = f.Transactor().WithinTx(ctx, func(ctx context.Context) error {
		changed := film.Clone()
		changed.Name = "after"
		changed.Genres = []entities.Genre{{ID: 2}, {ID: 3}}
		if _, err := f.FilmRepository().Update(ctx, changed); err != nil {
			return err
		}
		if _, err := f.FilmRepository().Create(ctx, sampleFilm("extra")); err != nil {
			return err
		}
		if err := f.LikeRepository().Add(ctx, film.ID, bob.ID); err != nil {
			return err
		}
		if err := f.FriendshipRepository().Upsert(ctx, entities.Friendship{
			UserID: alice.ID, FriendID: bob.ID, Status: entities.FriendshipConfirmed,
		}); err != nil {
			return err
		}
		if err := f.UserRepository().Delete(ctx, alice.ID); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	films, err := f.FilmRepository().List(ctx)
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, "before", films[0].Name)
	assert.Equal(t, []int{1, 2}, films[0].GenreIDs())

	restored, err := f.UserRepository().FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, restored)

	counts, err := f.LikeRepository().Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{film.ID: 1}, counts)

	edge, err := f.FriendshipRepository().Find(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, edge)
	assert.Equal(t, entities.FriendshipPending, edge.Status)
}

func TestReadsWaitForUnitOfWork(t *testing.T) {
	ctx := context.Background()
	f := newFactory()

	film, err := f.FilmRepository().Create(ctx, sampleFilm("visible"))
	require.NoError(t, err)

	deleted := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- f.Transactor().WithinTx(ctx, func(ctx context.Context) error {
			if err := f.FilmRepository().Delete(ctx, film.ID); err != nil {
				return err
			}
			close(deleted)
			<-release
			return errBoom
		})
	}()
	<-deleted

	seen := make(chan *entities.Film, 1)
	go func() {
		found, _ := f.FilmRepository().FindByID(ctx, film.ID)
		seen <- found
	}()

	select {
	case <-seen:
		t.Fatal("read outside the unit of work returned before it finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.ErrorIs(t, <-txDone, errBoom)

	select {
	case found := <-seen:
		require.NotNil(t, found, "rolled back delete must not be observed")
		assert.Equal(t, film.ID, found.ID)
	case <-time.After(time.Second):
		t.Fatal("read did not resume after the unit of work finished")
	}
}

func TestDatesAreStoredWithoutTimeOfDay(t *testing.T) {
	ctx := context.Background()
	f := newFactory()
	moscow := time.FixedZone("MSK", 3*60*60)

	film := sampleFilm("evening")
	film.ReleaseDate = time.Date(2001, time.March, 4, 23, 30, 0, 0, moscow)
	created, err := f.FilmRepository().Create(ctx, film)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2001, time.March, 4, 0, 0, 0, 0, time.UTC), created.ReleaseDate)

	birthday := time.Date(1990, time.May, 6, 8, 15, 0, 0, moscow)
	user, err := f.UserRepository().Create(ctx, &entities.User{Email: "d@x.ru", Login: "d", Name: "d", Birthday: &birthday})
	require.NoError(t, err)
	require.NotNil(t, user.Birthday)
	assert.Equal(t, time.Date(1990, time.May, 6, 0, 0, 0, 0, time.UTC), *user.Birthday)

	stored, err := f.UserRepository().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, *user.Birthday, *stored.Birthday)
}

func TestConcurrentLikes(t *testing.T) {
	ctx := context.Background()
	likes := newFactory().LikeRepository()

	var wg sync.WaitGroup
	for user := int64(1); user <= 50; user++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_ = likes.Add(ctx, 1, userID)
			_ = likes.Add(ctx, 1, userID)
		}(user)
	}
	wg.Wait()

	count, err := likes.CountByFilm(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 50, count)
}
