package entities

// Rating - возрастной рейтинг фильма (справочник MPA).
type Rating struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Genre - жанр фильма.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
