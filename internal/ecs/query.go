package ecs

// Each2 обходит сущности, у которых есть оба компонента A и B.
// Порядок задаёт первое хранилище.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	sa.Each(func(id EntityID, a *A) {
		if b, ok := sb.Get(id); ok {
			fn(id, a, b)
		}
	})
}
