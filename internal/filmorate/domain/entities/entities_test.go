package entities_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/domain/entities"
)

func validFilm() *entities.Film {
	return &entities.Film{
		Name:        "Прибытие поезда",
		Description: "Документальная лента братьев Люмьер",
		ReleaseDate: time.Date(1896, time.January, 25, 0, 0, 0, 0, time.UTC),
		Duration:    1,
		Rating:      entities.Rating{ID: 1},
	}
}

func TestFilmValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *entities.Film)
		wantErr error
	}{
		{name: "valid film", mutate: func(*entities.Film) {}},
		{name: "blank name", mutate: func(f *entities.Film) { f.Name = "  \t" }, wantErr: entities.ErrEmptyFilmName},
		{name: "description of 200 runes", mutate: func(f *entities.Film) { f.Description = strings.Repeat("я", 200) }},
		{name: "description of 201 runes", mutate: func(f *entities.Film) { f.Description = strings.Repeat("я", 201) }, wantErr: entities.ErrDescriptionTooLong},
		{name: "earliest release date", mutate: func(f *entities.Film) { f.ReleaseDate = entities.EarliestReleaseDate }},
		{name: "day before earliest release date", mutate: func(f *entities.Film) {
			f.ReleaseDate = entities.EarliestReleaseDate.AddDate(0, 0, -1)
		}, wantErr: entities.ErrReleaseDateTooEarly},
		{name: "zero duration", mutate: func(f *entities.Film) { f.Duration = 0 }, wantErr: entities.ErrInvalidDuration},
		{name: "negative duration", mutate: func(f *entities.Film) { f.Duration = -5 }, wantErr: entities.ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			film := validFilm()
			tt.mutate(film)

			err := film.Validate()

			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, entities.IsValidation(err))
			assert.False(t, entities.IsNotFound(err))
		})
	}
}

func TestUserValidate(t *testing.T) {
	now := time.Date(2024, time.May, 10, 15, 0, 0, 0, time.UTC)
	today := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	tests := []struct {
		name     string
		user     entities.User
		wantErr  error
		wantName string
	}{
		{name: "valid user", user: entities.User{Email: "a@b.ru", Login: "neo", Name: "Thomas"}, wantName: "Thomas"},
		{name: "blank name defaults to login", user: entities.User{Email: "a@b.ru", Login: "neo", Name: " "}, wantName: "neo"},
		{name: "empty email", user: entities.User{Login: "neo"}, wantErr: entities.ErrInvalidEmail},
		{name: "email without at", user: entities.User{Email: "ab.ru", Login: "neo"}, wantErr: entities.ErrInvalidEmail},
		{name: "empty login", user: entities.User{Email: "a@b.ru"}, wantErr: entities.ErrInvalidLogin},
		{name: "login with space", user: entities.User{Email: "a@b.ru", Login: "n eo"}, wantErr: entities.ErrInvalidLogin},
		{name: "login with tab", user: entities.User{Email: "a@b.ru", Login: "n\teo"}, wantErr: entities.ErrInvalidLogin},
		{name: "birthday today", user: entities.User{Email: "a@b.ru", Login: "neo", Birthday: &today}, wantName: "neo"},
		{name: "birthday tomorrow", user: entities.User{Email: "a@b.ru", Login: "neo", Birthday: &tomorrow}, wantErr: entities.ErrFutureBirthday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.user

			err := user.Validate(now)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, errors.Is(err, entities.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, user.Name)
		})
	}
}

func TestNormalizeGenres(t *testing.T) {
	got := entities.NormalizeGenres([]entities.Genre{{ID: 3}, {ID: 1}, {ID: 3}, {ID: 2}, {ID: 1}})

	assert.Equal(t, []entities.Genre{{ID: 1}, {ID: 2}, {ID: 3}}, got)
	assert.Nil(t, entities.NormalizeGenres(nil))

	extreme := entities.NormalizeGenres([]entities.Genre{{ID: math.MaxInt}, {ID: -1}, {ID: math.MinInt}, {ID: math.MaxInt}})
	assert.Equal(t, []entities.Genre{{ID: math.MinInt}, {ID: -1}, {ID: math.MaxInt}}, extreme)
}

func TestIdentityHelpers(t *testing.T) {
	a := &entities.Film{ID: 7, Name: "before"}
	b := a.Clone()
	b.Name = "after"

	assert.True(t, a.SameAs(b))
	assert.False(t, a.SameAs(&entities.Film{ID: 8, Name: "before"}))
	assert.False(t, a.SameAs(nil))

	birthday := time.Date(1990, time.March, 1, 0, 0, 0, 0, time.UTC)
	u := &entities.User{ID: 1, Birthday: &birthday}
	clone := u.Clone()
	*clone.Birthday = clone.Birthday.AddDate(1, 0, 0)

	assert.True(t, u.SameAs(clone))
	assert.Equal(t, 1990, u.Birthday.Year())
}

func TestNotFoundKinds(t *testing.T) {
	for _, err := range []error{
		entities.ErrFilmNotFound, entities.ErrUserNotFound, entities.ErrRatingNotFound, entities.ErrGenreNotFound,
	} {
		assert.True(t, entities.IsNotFound(err), err.Error())
		assert.False(t, entities.IsValidation(err), err.Error())
	}
	assert.True(t, entities.IsValidation(entities.ErrSelfFriendship))
}
