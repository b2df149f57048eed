package ecs

// Access декларирует, какие ресурсы система читает и пишет.
// Планировщик выполняет системы последовательно, декларация нужна
// для проверки совместимости будущего параллельного исполнения.
type Access struct {
	Reads  []string
	Writes []string
}

// Read добавляет чтение ресурса типа T
func Read[T any](a Access) Access {
	a.Reads = append(a.Reads, ResourceName[T]())
	return a
}

// Write добавляет запись ресурса типа T
func Write[T any](a Access) Access {
	a.Writes = append(a.Writes, ResourceName[T]())
	return a
}

// Conflicts сообщает, что две системы нельзя выполнять одновременно:
// обе пишут один ресурс, либо одна пишет то, что читает другая.
func (a Access) Conflicts(b Access) bool {
	return overlaps(a.Writes, b.Writes) || overlaps(a.Writes, b.Reads) || overlaps(a.Reads, b.Writes)
}

func overlaps(x, y []string) bool {
	for _, n := range x {
		if contains(y, n) {
			return true
		}
	}
	return false
}

func contains(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}
