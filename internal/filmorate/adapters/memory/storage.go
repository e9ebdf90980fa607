// Package memory реализует хранилища фильмотеки в памяти процесса.
//
// Все таблицы находятся в одном Storage под общим sync.RWMutex. Единица работы
// (WithinTx) держит txMu эксклюзивно: чтения и записи вне нее ждут ее
// завершения. Изменения внутри единицы работы записываются в журнал отмены,
// который при ошибке проигрывается в обратном порядке.
package memory

import (
	"context"
	"sync"

	"filmorate/internal/filmorate/domain/entities"
)

type edgeKey struct {
	userID   int64
	friendID int64
}

type tables struct {
	films       map[int64]*entities.Film
	users       map[int64]*entities.User
	likes       map[int64]map[int64]struct{}
	friendships map[edgeKey]entities.FriendshipStatus
}

func newTables() tables {
	return tables{
		films:       make(map[int64]*entities.Film),
		users:       make(map[int64]*entities.User),
		likes:       make(map[int64]map[int64]struct{}),
		friendships: make(map[edgeKey]entities.FriendshipStatus),
	}
}

// DefaultGenres - справочник жанров, которым заполняется хранилище.
var DefaultGenres = []entities.Genre{
	{ID: 1, Name: "Комедия"},
	{ID: 2, Name: "Драма"},
	{ID: 3, Name: "Мультфильм"},
	{ID: 4, Name: "Триллер"},
	{ID: 5, Name: "Документальный"},
	{ID: 6, Name: "Боевик"},
}

// DefaultRatings - справочник рейтингов MPA, которым заполняется хранилище.
var DefaultRatings = []entities.Rating{
	{ID: 1, Name: "G"},
	{ID: 2, Name: "PG"},
	{ID: 3, Name: "PG-13"},
	{ID: 4, Name: "R"},
	{ID: 5, Name: "NC-17"},
}

// Storage хранит все таблицы бэкенда в памяти.
type Storage struct {
	mu   sync.RWMutex
	txMu sync.RWMutex

	data    tables
	journal *journal
	genres  map[int]entities.Genre
	ratings map[int]entities.Rating

	// Счетчики не откатываются вместе с данными, как и последовательности в БД.
	lastFilmID int64
	lastUserID int64
}

// NewStorage создает пустое хранилище со справочниками по умолчанию.
func NewStorage() *Storage {
	return NewStorageWithReference(DefaultGenres, DefaultRatings)
}

// NewStorageWithReference создает пустое хранилище с заданными справочниками.
func NewStorageWithReference(genres []entities.Genre, ratings []entities.Rating) *Storage {
	s := &Storage{
		data:    newTables(),
		genres:  make(map[int]entities.Genre, len(genres)),
		ratings: make(map[int]entities.Rating, len(ratings)),
	}
	for _, g := range genres {
		s.genres[g.ID] = g
	}
	for _, r := range ratings {
		s.ratings[r.ID] = r
	}
	return s
}

// read выполняет чтение под блокировкой. Вне транзакции чтение ждет
// завершения текущей единицы работы и не видит ее незафиксированных изменений.
func (s *Storage) read(ctx context.Context, fn func()) {
	if !s.inTx(ctx) {
		s.txMu.RLock()
		defer s.txMu.RUnlock()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

// write выполняет изменение под блокировкой. Вне транзакции изменение
// ждет завершения текущей единицы работы, чтобы откат не затер чужие записи.
func (s *Storage) write(ctx context.Context, fn func() error) error {
	if !s.inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// decorate возвращает копию фильма с названиями рейтинга и жанров из справочников.
func (s *Storage) decorate(f *entities.Film) *entities.Film {
	out := f.Clone()
	if r, ok := s.ratings[out.Rating.ID]; ok {
		out.Rating = r
	}
	for i, g := range out.Genres {
		if ref, ok := s.genres[g.ID]; ok {
			out.Genres[i] = ref
		}
	}
	return out
}
