// Package entities описывает сущности домена фильмотеки и таксономию ошибок.
package entities

import (
	"errors"
	"fmt"
)

// Два вида ошибок, различимых вызывающей стороной через errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// Ошибки отсутствия ресурсов.
var (
	ErrFilmNotFound   = fmt.Errorf("film %w", ErrNotFound)
	ErrUserNotFound   = fmt.Errorf("user %w", ErrNotFound)
	ErrRatingNotFound = fmt.Errorf("rating %w", ErrNotFound)
	ErrGenreNotFound  = fmt.Errorf("genre %w", ErrNotFound)
)

// Ошибки валидации фильма.
var (
	ErrEmptyFilmName       = fmt.Errorf("%w: film name cannot be empty", ErrValidation)
	ErrDescriptionTooLong  = fmt.Errorf("%w: description max length is %d characters", ErrValidation, MaxDescriptionLength)
	ErrReleaseDateTooEarly = fmt.Errorf("%w: release date cannot be before %s", ErrValidation, EarliestReleaseDate.Format(DateLayout))
	ErrInvalidDuration     = fmt.Errorf("%w: duration must be positive", ErrValidation)
)

// Ошибки валидации пользователя.
var (
	ErrInvalidEmail   = fmt.Errorf("%w: email must not be empty and must contain '@'", ErrValidation)
	ErrInvalidLogin   = fmt.Errorf("%w: login must not be empty or contain spaces", ErrValidation)
	ErrFutureBirthday = fmt.Errorf("%w: birthday cannot be in the future", ErrValidation)
	ErrSelfFriendship = fmt.Errorf("%w: cannot add yourself as friend", ErrValidation)
	ErrInvalidStatus  = fmt.Errorf("%w: unknown friendship status", ErrValidation)
)

// IsNotFound сообщает, относится ли ошибка к виду "ресурс не найден".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation сообщает, относится ли ошибка к виду "некорректный ввод".
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
