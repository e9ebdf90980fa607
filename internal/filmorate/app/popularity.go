package app

import (
	"cmp"
	"slices"

	"filmorate/internal/filmorate/domain/entities"
)

// RankByPopularity возвращает до count фильмов по убыванию числа отметок,
// при равенстве по возрастанию id. Фильмы без записи в counts имеют ноль отметок.
func RankByPopularity(films []*entities.Film, counts map[int64]int, count int) []*entities.Film {
	if count <= 0 || len(films) == 0 {
		return []*entities.Film{}
	}

	ranked := slices.Clone(films)
	slices.SortStableFunc(ranked, func(a, b *entities.Film) int {
		if c := cmp.Compare(counts[b.ID], counts[a.ID]); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if len(ranked) > count {
		ranked = ranked[:count]
	}
	return ranked
}
