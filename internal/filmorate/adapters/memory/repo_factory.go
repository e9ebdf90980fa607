package memory

import "filmorate/internal/filmorate/ports/repositories"

// RepositoryFactory создает все хранилища поверх одного Storage.
type RepositoryFactory struct {
	filmRepo       repositories.FilmRepository
	userRepo       repositories.UserRepository
	likeRepo       repositories.LikeRepository
	friendshipRepo repositories.FriendshipRepository
	genreRepo      repositories.GenreRepository
	ratingRepo     repositories.RatingRepository
	transactor     repositories.Transactor
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(s *Storage) *RepositoryFactory {
	return &RepositoryFactory{
		filmRepo:       NewFilmRepository(s),
		userRepo:       NewUserRepository(s),
		likeRepo:       NewLikeRepository(s),
		friendshipRepo: NewFriendshipRepository(s),
		genreRepo:      NewGenreRepository(s),
		ratingRepo:     NewRatingRepository(s),
		transactor:     NewTransactor(s),
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

// LikeRepository возвращает репозиторий отметок.
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

// Transactor возвращает единицу работы хранилища.
func (f *RepositoryFactory) Transactor() repositories.Transactor {
	return f.transactor
}
