package ecs

// Removable реализуют все хранилища, чтобы World мог удалить
// данные сущности из каждого при её уничтожении.
type Removable interface {
	Remove(id EntityID)
}

// Store типизированное хранилище компонентов (sparse set).
// Each обходит сущности в порядке добавления до первого удаления,
// порядок детерминирован для одной и той же последовательности операций.
type Store[T any] struct {
	index map[EntityID]int
	ids   []EntityID
	data  []*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		index: make(map[EntityID]int, 256),
	}
}

func (s *Store[T]) Set(id EntityID, c *T) {
	if i, ok := s.index[id]; ok {
		s.data[i] = c
		return
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	s.data = append(s.data, c)
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.data[i], true
}

func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.ids) - 1
	if i != last {
		s.ids[i] = s.ids[last]
		s.data[i] = s.data[last]
		s.index[s.ids[i]] = i
	}
	s.ids = s.ids[:last]
	s.data[last] = nil
	s.data = s.data[:last]
	delete(s.index, id)
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.ids)
}

// Each обходит копию списка, поэтому fn может менять хранилище
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	ids := append([]EntityID(nil), s.ids...)
	for _, id := range ids {
		if c, ok := s.Get(id); ok {
			fn(id, c)
		}
	}
}

// IDs возвращает сущности хранилища в порядке обхода
func (s *Store[T]) IDs() []EntityID {
	return append([]EntityID(nil), s.ids...)
}
