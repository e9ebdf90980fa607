// Package dto содержит JSON-представления сущностей фильмотеки.
package dto

import (
	"fmt"
	"time"

	"filmorate/internal/filmorate/domain/entities"
)

// ErrMsgInvalidDate - сообщение о дате в неверном формате.
const ErrMsgInvalidDate = "date must be in YYYY-MM-DD format"

// Reference - элемент справочника жанров или рейтингов.
type Reference struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// Film представляет фильм в запросах и ответах.
type Film struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ReleaseDate string      `json:"releaseDate"`
	Duration    int         `json:"duration"`
	Mpa         *Reference  `json:"mpa"`
	Genres      []Reference `json:"genres"`
}

// ToEntity преобразует запрос в сущность. Отсутствующий рейтинг
// передается как нулевой идентификатор и отклоняется сервисом.
func (f *Film) ToEntity() (*entities.Film, error) {
	release, err := time.Parse(entities.DateLayout, f.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrValidation, ErrMsgInvalidDate)
	}

	film := &entities.Film{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: release,
		Duration:    f.Duration,
	}
	if f.Mpa != nil {
		film.Rating = entities.Rating{ID: f.Mpa.ID}
	}
	for _, g := range f.Genres {
		film.Genres = append(film.Genres, entities.Genre{ID: g.ID})
	}
	return film, nil
}

// FromFilm строит ответ по сущности. Жанры всегда сериализуются массивом.
func FromFilm(film *entities.Film) Film {
	genres := make([]Reference, 0, len(film.Genres))
	for _, g := range film.Genres {
		genres = append(genres, Reference{ID: g.ID, Name: g.Name})
	}
	return Film{
		ID:          film.ID,
		Name:        film.Name,
		Description: film.Description,
		ReleaseDate: film.ReleaseDate.Format(entities.DateLayout),
		Duration:    film.Duration,
		Mpa:         &Reference{ID: film.Rating.ID, Name: film.Rating.Name},
		Genres:      genres,
	}
}

// FromFilms строит список ответов.
func FromFilms(films []*entities.Film) []Film {
	out := make([]Film, 0, len(films))
	for _, f := range films {
		out = append(out, FromFilm(f))
	}
	return out
}
