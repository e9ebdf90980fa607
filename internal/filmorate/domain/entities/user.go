package entities

import (
	"strings"
	"time"
	"unicode"
)

// User представляет пользователя.
type User struct {
	ID       int64
	Email    string
	Login    string
	Name     string
	Birthday *time.Time
}

// SameAs сравнивает пользователей только по идентификатору.
func (u *User) SameAs(other *User) bool {
	if u == nil || other == nil {
		return false
	}
	return u.ID == other.ID
}

// Clone возвращает глубокую копию пользователя.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Birthday != nil {
		b := *u.Birthday
		c.Birthday = &b
	}
	return &c
}

// Validate проверяет поля пользователя относительно момента now
// и подставляет логин вместо пустого имени.
func (u *User) Validate(now time.Time) error {
	if strings.TrimSpace(u.Email) == "" || !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(u.Login) == "" || strings.IndexFunc(u.Login, unicode.IsSpace) >= 0 {
		return ErrInvalidLogin
	}
	if u.Birthday != nil && DateOnly(*u.Birthday).After(DateOnly(now)) {
		return ErrFutureBirthday
	}
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
	return nil
}
