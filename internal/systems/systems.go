package systems

import (
	"github.com/annel0/voxelcore/internal/scheduler"
)

// Slotted система, знающая свой приоритет, точку сброса и доступ к ресурсам
type Slotted interface {
	scheduler.System
	Options() scheduler.Options
}

// Binding привязка системы к событиям
type Binding struct {
	Events []scheduler.Event
	System Slotted
}

// Defaults возвращает стандартный набор систем движка в порядке регистрации
func Defaults(gen *GeneratorSystem, stats StatsSystem) []Binding {
	return []Binding{
		{Events: []scheduler.Event{scheduler.EventPoll}, System: TimeSystem{}},
		{Events: []scheduler.Event{scheduler.EventPoll}, System: InputSystem{}},
		{Events: []scheduler.Event{scheduler.EventResized, scheduler.EventQuit}, System: WindowSystem{}},
		{Events: []scheduler.Event{scheduler.EventUpdate}, System: ChunkLoadSystem{}},
		{Events: []scheduler.Event{scheduler.EventUpdate}, System: gen},
		{Events: []scheduler.Event{scheduler.EventRender}, System: MesherSystem{}},
		{Events: []scheduler.Event{scheduler.EventRender}, System: RenderSystem{}},
		{Events: []scheduler.Event{scheduler.EventRender}, System: stats},
	}
}

// RegisterAll регистрирует привязки в планировщике
func RegisterAll(s *scheduler.Scheduler, bindings []Binding) {
	for _, b := range bindings {
		for _, e := range b.Events {
			s.Register(e, b.System, b.System.Options())
		}
	}
}
