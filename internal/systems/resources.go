package systems

import (
	"sync"
	"time"

	"github.com/annel0/voxelcore/internal/ecs"
	"github.com/annel0/voxelcore/internal/mesh"
	"github.com/annel0/voxelcore/internal/render"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
	"github.com/annel0/voxelcore/internal/world/block"
)

// Теги сущностей чанков
const (
	TagUngenerated ecs.Tag = "ungenerated"
	TagMeshed      ecs.Tag = "meshed"
)

// ChunkRef компонент сущности чанка
type ChunkRef struct {
	Chunk *world.Chunk
}

// MeshRef компонент опубликованной сетки чанка
type MeshRef struct {
	Mesh     *mesh.Mesh
	Uploaded bool
	Failures int // Неудачные попытки загрузки этой сетки
}

// Clock время кадра. Next выставляет движок перед событием POLL.
type Clock struct {
	Next    time.Duration
	Delta   time.Duration
	Elapsed time.Duration
	Frame   uint64
}

// Terrain загруженный мир: палитра, кеш чанков, генератор и сущности чанков
type Terrain struct {
	Palette   *block.Palette
	Cache     *world.ChunkCache
	Generator *world.Generator
	Entities  map[vec.Vec3]ecs.EntityID
}

// NewTerrain создаёт пустой мир
func NewTerrain(palette *block.Palette, gen *world.Generator) *Terrain {
	return &Terrain{
		Palette:   palette,
		Cache:     world.NewChunkCache(),
		Generator: gen,
		Entities:  make(map[vec.Vec3]ecs.EntityID),
	}
}

// Meshes опубликованные сетки
type Meshes struct {
	Cache  *mesh.Cache
	Mesher *mesh.Mesher
}

// Renderer потребитель сеток
type Renderer struct {
	Backend render.Backend
}

// LoadCenter центр и радиусы загрузки в чанках
type LoadCenter struct {
	Pos      vec.Vec3 // Мировая позиция наблюдателя
	Radius   int      // По X и Z
	Vertical int      // По Y
}

// Corner возвращает угол чанка наблюдателя
func (l *LoadCenter) Corner() vec.Vec3 {
	return world.ChunkCorner(l.Pos)
}

// InputKind тип входного события
type InputKind int

const (
	InputMove  InputKind = iota // Переместить центр загрузки
	InputPlace                  // Записать блок
)

// InputEvent входное событие от внешнего мира
type InputEvent struct {
	Kind  InputKind
	Pos   vec.Vec3
	Block block.Packed
}

// InputQueue потокобезопасный приёмник входных событий
type InputQueue struct {
	mu     sync.Mutex
	events []InputEvent
}

// Submit добавляет событие; вызывается из любой горутины
func (q *InputQueue) Submit(e InputEvent) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

func (q *InputQueue) drain() []InputEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

// InputState события, зафиксированные на текущий кадр
type InputState struct {
	Frame []InputEvent
	Total int
}

// WindowState состояние окна
type WindowState struct {
	Width, Height int
	PendingWidth  int
	PendingHeight int
	Resizes       int
	Open          bool
}

// Snapshot сводка состояния движка для отладочного API
type Snapshot struct {
	Frame       uint64        `json:"frame"`
	Elapsed     time.Duration `json:"elapsed_ns"`
	Entities    int           `json:"entities"`
	Chunks      int           `json:"chunks"`
	Generated   int           `json:"generated"`
	Dirty       int           `json:"dirty"`
	Meshes      int           `json:"meshes"`
	Faces       int           `json:"faces"`
	Render      render.Stats  `json:"render"`
	WindowOpen  bool          `json:"window_open"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	LoadCenter  vec.Vec3      `json:"load_center"`
	ChunkList   []ChunkInfo   `json:"-"`
	PaletteHash string        `json:"palette_digest"`
}

// ChunkInfo описание загруженного чанка
type ChunkInfo struct {
	Pos       vec.Vec3 `json:"pos"`
	Generated bool     `json:"generated"`
	Dirty     bool     `json:"dirty"`
	Blocks    int      `json:"blocks"`
	Faces     int      `json:"faces"`
	Digest    string   `json:"digest"`
}

// StatsBoard последний снимок; читается из HTTP-горутин
type StatsBoard struct {
	mu   sync.RWMutex
	snap Snapshot
}

// Publish заменяет снимок
func (b *StatsBoard) Publish(s Snapshot) {
	b.mu.Lock()
	b.snap = s
	b.mu.Unlock()
}

// Latest возвращает копию последнего снимка
func (b *StatsBoard) Latest() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s := b.snap
	s.ChunkList = append([]ChunkInfo(nil), b.snap.ChunkList...)
	return s
}
