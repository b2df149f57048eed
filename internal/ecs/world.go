package ecs

import "sort"

// Tag именованная метка сущности без данных
type Tag string

type storeKey[T any] struct{}

// World корневой контейнер ECS: пул сущностей, хранилища компонентов,
// теги, типизированные ресурсы и отложенное уничтожение.
type World struct {
	pool         *EntityPool
	stores       map[any]Removable
	tags         map[Tag]*Store[struct{}]
	resources    map[any]any
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		stores:       make(map[any]Removable),
		tags:         make(map[Tag]*Store[struct{}]),
		resources:    make(map[any]any),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Len число живых сущностей
func (w *World) Len() int { return w.pool.Len() }

// Components возвращает хранилище компонентов типа T, создавая его при первом обращении
func Components[T any](w *World) *Store[T] {
	key := storeKey[T]{}
	if s, ok := w.stores[key]; ok {
		return s.(*Store[T])
	}
	s := NewStore[T]()
	w.stores[key] = s
	return s
}

// Insert прикрепляет компонент к сущности
func Insert[T any](w *World, id EntityID, c *T) {
	Components[T](w).Set(id, c)
}

// Get возвращает компонент сущности
func Get[T any](w *World, id EntityID) (*T, bool) {
	return Components[T](w).Get(id)
}

// Remove открепляет компонент
func Remove[T any](w *World, id EntityID) {
	Components[T](w).Remove(id)
}

func (w *World) tagStore(tag Tag) *Store[struct{}] {
	s, ok := w.tags[tag]
	if !ok {
		s = NewStore[struct{}]()
		w.tags[tag] = s
	}
	return s
}

// AddTag помечает сущность
func (w *World) AddTag(id EntityID, tag Tag) {
	w.tagStore(tag).Set(id, &struct{}{})
}

// RemoveTag снимает метку
func (w *World) RemoveTag(id EntityID, tag Tag) {
	if s, ok := w.tags[tag]; ok {
		s.Remove(id)
	}
}

// HasTag проверяет метку
func (w *World) HasTag(id EntityID, tag Tag) bool {
	s, ok := w.tags[tag]
	return ok && s.Has(id)
}

// Tagged возвращает помеченные сущности в порядке пометки
func (w *World) Tagged(tag Tag) []EntityID {
	s, ok := w.tags[tag]
	if !ok {
		return nil
	}
	return s.IDs()
}

// Tags возвращает имена всех известных тегов по алфавиту
func (w *World) Tags() []Tag {
	out := make([]Tag, 0, len(w.tags))
	for t := range w.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Destroy немедленно уничтожает сущность и все её компоненты
func (w *World) Destroy(id EntityID) bool {
	if !w.pool.Alive(id) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(id)
	}
	for _, s := range w.tags {
		s.Remove(id)
	}
	return w.pool.Destroy(id)
}

// MarkForDestruction ставит сущность в очередь; планировщик очищает её
// в ближайшей точке сброса команд
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue уничтожает сущности из очереди вместе с компонентами
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, id := range w.destroyQueue {
		if w.Destroy(id) {
			n++
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}
