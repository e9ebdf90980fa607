package entities

import (
	"cmp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout - формат дат в API и логах.
const DateLayout = "2006-01-02"

// MaxDescriptionLength - максимальная длина описания фильма в символах.
const MaxDescriptionLength = 200

// EarliestReleaseDate - день первого публичного киносеанса.
var EarliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// Film представляет фильм.
type Film struct {
	ID          int64
	Name        string
	Description string
	ReleaseDate time.Time
	Duration    int
	Rating      Rating
	Genres      []Genre
}

// SameAs сравнивает фильмы только по идентификатору.
func (f *Film) SameAs(other *Film) bool {
	if f == nil || other == nil {
		return false
	}
	return f.ID == other.ID
}

// Clone возвращает глубокую копию фильма.
func (f *Film) Clone() *Film {
	if f == nil {
		return nil
	}
	c := *f
	c.Genres = slices.Clone(f.Genres)
	return &c
}

// GenreIDs возвращает идентификаторы жанров фильма в порядке хранения.
func (f *Film) GenreIDs() []int {
	ids := make([]int, 0, len(f.Genres))
	for _, g := range f.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}

// Validate проверяет поля фильма. Ссылки на справочники проверяются в сервисе.
func (f *Film) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyFilmName
	}
	if utf8.RuneCountInString(f.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if DateOnly(f.ReleaseDate).Before(EarliestReleaseDate) {
		return ErrReleaseDateTooEarly
	}
	if f.Duration <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// NormalizeGenres убирает повторы и сортирует жанры по идентификатору.
func NormalizeGenres(genres []Genre) []Genre {
	if len(genres) == 0 {
		return nil
	}
	out := slices.Clone(genres)
	slices.SortFunc(out, func(a, b Genre) int { return cmp.Compare(a.ID, b.ID) })
	return slices.CompactFunc(out, func(a, b Genre) bool { return a.ID == b.ID })
}

// DateOnly отбрасывает время суток и приводит дату к UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
