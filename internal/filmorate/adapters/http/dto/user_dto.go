package dto

import (
	"fmt"
	"time"

	"filmorate/internal/filmorate/domain/entities"
)

// User представляет пользователя в запросах и ответах.
type User struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Login    string  `json:"login"`
	Name     string  `json:"name"`
	Birthday *string `json:"birthday"`
}

// ToEntity преобразует запрос в сущность.
func (u *User) ToEntity() (*entities.User, error) {
	user := &entities.User{
		ID:    u.ID,
		Email: u.Email,
		Login: u.Login,
		Name:  u.Name,
	}
	if u.Birthday != nil && *u.Birthday != "" {
		birthday, err := time.Parse(entities.DateLayout, *u.Birthday)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", entities.ErrValidation, ErrMsgInvalidDate)
		}
		user.Birthday = &birthday
	}
	return user, nil
}

// FromUser строит ответ по сущности.
func FromUser(user *entities.User) User {
	out := User{
		ID:    user.ID,
		Email: user.Email,
		Login: user.Login,
		Name:  user.Name,
	}
	if user.Birthday != nil {
		b := user.Birthday.Format(entities.DateLayout)
		out.Birthday = &b
	}
	return out
}

// FromUsers строит список ответов.
func FromUsers(users []*entities.User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}
