package ecs

import "fmt"

type resourceKey[T any] struct{}

// SetResource кладёт единственный экземпляр ресурса типа T
func SetResource[T any](w *World, r *T) {
	w.resources[resourceKey[T]{}] = r
}

// GetResource возвращает ресурс типа T. Отсутствие ресурса: нормальное
// состояние "ещё не готов", системы в этом случае ничего не делают.
func GetResource[T any](w *World) (*T, bool) {
	r, ok := w.resources[resourceKey[T]{}]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

// MustResource возвращает ресурс или паникует
func MustResource[T any](w *World) *T {
	r, ok := GetResource[T](w)
	if !ok {
		panic(fmt.Sprintf("ecs: resource %s is not set", ResourceName[T]()))
	}
	return r
}

// RemoveResource удаляет ресурс
func RemoveResource[T any](w *World) {
	delete(w.resources, resourceKey[T]{})
}

// ResourceName имя типа ресурса для деклараций доступа
func ResourceName[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))[1:]
}
