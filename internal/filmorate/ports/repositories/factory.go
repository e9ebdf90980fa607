package repositories

// Factory предоставляет согласованный набор хранилищ одного бэкенда.
type Factory interface {
	FilmRepository() FilmRepository
	UserRepository() UserRepository
	LikeRepository() LikeRepository
	FriendshipRepository() FriendshipRepository
	GenreRepository() GenreRepository
	RatingRepository() RatingRepository
	Transactor() Transactor
}
