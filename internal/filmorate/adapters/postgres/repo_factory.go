package postgres

import (
	"filmorate/internal/filmorate/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	filmRepo       repositories.FilmRepository
	userRepo       repositories.UserRepository
	likeRepo       *LikeRepository
	friendshipRepo repositories.FriendshipRepository
	genreRepo      repositories.GenreRepository
	ratingRepo     repositories.RatingRepository
	transactor     *Transactor
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		filmRepo:       NewFilmRepository(pool),
		userRepo:       NewUserRepository(pool),
		likeRepo:       NewLikeRepository(pool),
		friendshipRepo: NewFriendshipRepository(pool),
		genreRepo:      NewGenreRepository(pool),
		ratingRepo:     NewRatingRepository(pool),
		transactor:     NewTransactor(pool),
	}
}

// FilmRepository возвращает репозиторий фильмов.
func (f *RepositoryFactory) FilmRepository() repositories.FilmRepository {
	return f.filmRepo
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// LikeRepository возвращает репозиторий отметок. Он также реализует repositories.PopularityRanker.
func (f *RepositoryFactory) LikeRepository() repositories.LikeRepository {
	return f.likeRepo
}

// FriendshipRepository возвращает репозиторий дружбы.
func (f *RepositoryFactory) FriendshipRepository() repositories.FriendshipRepository {
	return f.friendshipRepo
}

// GenreRepository возвращает справочник жанров.
func (f *RepositoryFactory) GenreRepository() repositories.GenreRepository {
	return f.genreRepo
}

// RatingRepository возвращает справочник рейтингов.
func (f *RepositoryFactory) RatingRepository() repositories.RatingRepository {
	return f.ratingRepo
}

// Transactor возвращает единицу работы поверх пула.
func (f *RepositoryFactory) Transactor() repositories.Transactor {
	return f.transactor
}
