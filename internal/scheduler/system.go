package scheduler

import (
	"context"

	"github.com/annel0/voxelcore/internal/ecs"
)

// System единица логики, привязанная к событию
type System interface {
	Name() string
	Run(ctx *Context)
}

// Preparer реализуют системы, которым нужна инициализация перед первым запуском
type Preparer interface {
	Prepare(w *ecs.World)
}

// Options атрибуты регистрации системы
type Options struct {
	Priority int        // Меньше: раньше, допускаются отрицательные
	Flush    bool       // Применить накопленные буферы команд перед запуском
	Access   ecs.Access // Читаемые и записываемые ресурсы
}

// Context передаётся системе на время одного запуска
type Context struct {
	context.Context

	World    *ecs.World
	Commands *ecs.CommandBuffer
	Event    Event

	queue *Queue
}

// Push ставит событие в очередь; оно будет обработано в следующем поколении Drive
func (c *Context) Push(e Event) {
	c.queue.Push(e)
}

type funcSystem struct {
	name string
	run  func(ctx *Context)
}

func (f funcSystem) Name() string     { return f.name }
func (f funcSystem) Run(ctx *Context) { f.run(ctx) }

// Func оборачивает функцию в систему
func Func(name string, run func(ctx *Context)) System {
	return funcSystem{name: name, run: run}
}

// SystemInfo описание зарегистрированной системы
type SystemInfo struct {
	Name     string
	Event    Event
	Priority int
	Flush    bool
	Access   ecs.Access
	Prepared bool
}
