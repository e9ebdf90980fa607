package entities

// Like - отметка "нравится" пользователя для фильма.
type Like struct {
	FilmID int64
	UserID int64
}

// FriendshipStatus - статус направленного ребра дружбы.
type FriendshipStatus string

// Статусы дружбы.
const (
	FriendshipPending   FriendshipStatus = "PENDING"
	FriendshipConfirmed FriendshipStatus = "CONFIRMED"
)

// Valid сообщает, является ли статус допустимым.
func (s FriendshipStatus) Valid() bool {
	return s == FriendshipPending || s == FriendshipConfirmed
}

// Friendship - направленное ребро от UserID к FriendID.
type Friendship struct {
	UserID   int64
	FriendID int64
	Status   FriendshipStatus
}
