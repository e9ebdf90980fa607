package dto

import "filmorate/internal/filmorate/domain/entities"

// FromGenres строит ответ со списком жанров.
func FromGenres(genres []entities.Genre) []Reference {
	out := make([]Reference, 0, len(genres))
	for _, g := range genres {
		out = append(out, Reference{ID: g.ID, Name: g.Name})
	}
	return out
}

// FromRatings строит ответ со списком рейтингов.
func FromRatings(ratings []entities.Rating) []Reference {
	out := make([]Reference, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, Reference{ID: r.ID, Name: r.Name})
	}
	return out
}
