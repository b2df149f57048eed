package ecs

// Command отложенное изменение мира
type Command func(w *World)

// CommandBuffer накапливает изменения сущностей, компонентов и тегов.
// Изменения применяются только при Apply, который вызывает планировщик
// в точках сброса.
type CommandBuffer struct {
	cmds []Command
}

func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{cmds: make([]Command, 0, 8)}
}

// Push добавляет произвольную команду
func (b *CommandBuffer) Push(c Command) {
	b.cmds = append(b.cmds, c)
}

// Spawn создаёт сущность при применении и передаёт её в init
func (b *CommandBuffer) Spawn(init func(w *World, id EntityID)) {
	b.Push(func(w *World) {
		id := w.CreateEntity()
		if init != nil {
			init(w, id)
		}
	})
}

// Destroy уничтожает сущность
func (b *CommandBuffer) Destroy(id EntityID) {
	b.Push(func(w *World) { w.Destroy(id) })
}

// AddTag помечает сущность
func (b *CommandBuffer) AddTag(id EntityID, tag Tag) {
	b.Push(func(w *World) {
		if w.Alive(id) {
			w.AddTag(id, tag)
		}
	})
}

// RemoveTag снимает метку
func (b *CommandBuffer) RemoveTag(id EntityID, tag Tag) {
	b.Push(func(w *World) { w.RemoveTag(id, tag) })
}

// Len число накопленных команд
func (b *CommandBuffer) Len() int { return len(b.cmds) }

// Apply применяет команды по порядку и очищает буфер
func (b *CommandBuffer) Apply(w *World) int {
	n := len(b.cmds)
	for i, c := range b.cmds {
		c(w)
		b.cmds[i] = nil
	}
	b.cmds = b.cmds[:0]
	return n
}

// InsertCmd откладывает прикрепление компонента
func InsertCmd[T any](b *CommandBuffer, id EntityID, c *T) {
	b.Push(func(w *World) {
		if w.Alive(id) {
			Insert(w, id, c)
		}
	})
}

// RemoveCmd откладывает открепление компонента
func RemoveCmd[T any](b *CommandBuffer, id EntityID) {
	b.Push(func(w *World) { Remove[T](w, id) })
}
