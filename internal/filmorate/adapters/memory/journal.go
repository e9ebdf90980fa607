package memory

import "filmorate/internal/filmorate/domain/entities"

// journal - журнал отмены открытой единицы работы. Каждая запись
// возвращает одно изменение таблиц.
type journal struct {
	undo []func(t *tables)
}

func (j *journal) record(fn func(t *tables)) {
	if j != nil {
		j.undo = append(j.undo, fn)
	}
}

// rollback проигрывает журнал от последнего изменения к первому.
func (j *journal) rollback(t *tables) {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i](t)
	}
	j.undo = nil
}

// Все изменения таблиц идут через методы ниже под s.mu.Lock.
// Вне единицы работы s.journal == nil и журнал не ведется.

func (s *Storage) putFilm(f *entities.Film) {
	prev, existed := s.data.films[f.ID]
	s.journal.record(func(t *tables) {
		if existed {
			t.films[f.ID] = prev
		} else {
			delete(t.films, f.ID)
		}
	})
	s.data.films[f.ID] = f
}

func (s *Storage) deleteFilm(id int64) {
	prev, existed := s.data.films[id]
	if !existed {
		return
	}
	s.journal.record(func(t *tables) { t.films[id] = prev })
	delete(s.data.films, id)
}

func (s *Storage) putUser(u *entities.User) {
	prev, existed := s.data.users[u.ID]
	s.journal.record(func(t *tables) {
		if existed {
			t.users[u.ID] = prev
		} else {
			delete(t.users, u.ID)
		}
	})
	s.data.users[u.ID] = u
}

func (s *Storage) deleteUser(id int64) {
	prev, existed := s.data.users[id]
	if !existed {
		return
	}
	s.journal.record(func(t *tables) { t.users[id] = prev })
	delete(s.data.users, id)
}

func (s *Storage) addLike(filmID, userID int64) {
	set, ok := s.data.likes[filmID]
	if !ok {
		set = make(map[int64]struct{})
		s.data.likes[filmID] = set
	}
	if _, liked := set[userID]; liked {
		return
	}
	s.journal.record(func(t *tables) { removeFromSet(t, filmID, userID) })
	set[userID] = struct{}{}
}

func (s *Storage) removeLike(filmID, userID int64) {
	if _, liked := s.data.likes[filmID][userID]; !liked {
		return
	}
	s.journal.record(func(t *tables) {
		set, ok := t.likes[filmID]
		if !ok {
			set = make(map[int64]struct{})
			t.likes[filmID] = set
		}
		set[userID] = struct{}{}
	})
	removeFromSet(&s.data, filmID, userID)
}

func removeFromSet(t *tables, filmID, userID int64) {
	set := t.likes[filmID]
	delete(set, userID)
	if len(set) == 0 {
		delete(t.likes, filmID)
	}
}

func (s *Storage) removeFilmLikes(filmID int64) {
	for userID := range s.data.likes[filmID] {
		s.removeLike(filmID, userID)
	}
}

func (s *Storage) removeUserLikes(userID int64) {
	for filmID, set := range s.data.likes {
		if _, liked := set[userID]; liked {
			s.removeLike(filmID, userID)
		}
	}
}

func (s *Storage) putEdge(key edgeKey, status entities.FriendshipStatus) {
	prev, existed := s.data.friendships[key]
	s.journal.record(func(t *tables) {
		if existed {
			t.friendships[key] = prev
		} else {
			delete(t.friendships, key)
		}
	})
	s.data.friendships[key] = status
}

func (s *Storage) deleteEdge(key edgeKey) {
	prev, existed := s.data.friendships[key]
	if !existed {
		return
	}
	s.journal.record(func(t *tables) { t.friendships[key] = prev })
	delete(s.data.friendships, key)
}

func (s *Storage) removeUserEdges(userID int64) {
	for key := range s.data.friendships {
		if key.userID == userID || key.friendID == userID {
			s.deleteEdge(key)
		}
	}
}
