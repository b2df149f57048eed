package world

import (
	"encoding/binary"
	"fmt"

	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
	"github.com/cespare/xxhash/v2"
)

// Размеры чанка. Раскладка ячеек плотная, шаги (1, S, S²) по (x, y, z).
const (
	ChunkShift  = 5
	ChunkSize   = 1 << ChunkShift        // 32
	ChunkLayer  = ChunkSize * ChunkSize  // 1024
	ChunkVolume = ChunkLayer * ChunkSize // 32768
)

// Chunk представляет куб мира 32x32x32 ячеек с углом Pos.
//
// Чанк не защищён мьютексом: планировщик выполняет системы по очереди,
// а запись во время генерации/построения сетки эксклюзивна.
type Chunk struct {
	pos    vec.Vec3 // Мировой минимальный угол, кратен ChunkSize
	blocks [ChunkVolume]block.Packed

	generated bool // Выставляется генератором ровно один раз
	dirty     bool // Сетка устарела

	changeCounter int            // Счетчик изменений ячеек
	resolver      block.Resolver // Побочная таблица addressed-ячеек (может быть nil)
}

// NewChunk создаёт пустой чанк; произвольная позиция прижимается к сетке чанков
func NewChunk(pos vec.Vec3) *Chunk {
	return &Chunk{pos: ChunkCorner(pos)}
}

// Pos возвращает мировой угол чанка
func (c *Chunk) Pos() vec.Vec3 { return c.pos }

// Index возвращает линейный индекс ячейки. Выход за [0, S)³: ошибка программиста.
func Index(r vec.Vec3) int {
	if !r.InBox(ChunkSize) {
		panic(fmt.Sprintf("world: relative position %+v outside chunk bounds [0,%d)", r, ChunkSize))
	}
	return r.X | r.Y<<ChunkShift | r.Z<<(2*ChunkShift)
}

// GetPacked возвращает упакованную ячейку по относительной позиции
func (c *Chunk) GetPacked(r vec.Vec3) block.Packed {
	return c.blocks[Index(r)]
}

// GetUnpacked возвращает представление ячейки вместе с данными палитры
func (c *Chunk) GetUnpacked(r vec.Vec3, palette *block.Palette) UnpackedBlock {
	return NewUnpackedBlock(c.GetPacked(r), c.ToWorld(r), palette)
}

// SetPacked записывает ячейку. Dirty выставляется только если значение изменилось.
func (c *Chunk) SetPacked(r vec.Vec3, v block.Packed) bool {
	i := Index(r)
	if c.blocks[i] == v {
		return false
	}
	c.blocks[i] = v
	c.dirty = true
	c.changeCounter++
	return true
}

// ShapeAt возвращает форму ячейки с учётом побочной таблицы
func (c *Chunk) ShapeAt(r vec.Vec3, palette *block.Palette) (block.Shape, block.Packed) {
	v := palette.Resolve(c.GetPacked(r), c.resolver)
	return palette.ShapeOf(v), v
}

// IsGenerated сообщает, заполнен ли чанк генератором
func (c *Chunk) IsGenerated() bool { return c.generated }

// MarkGenerated помечает чанк как сгенерированный
func (c *Chunk) MarkGenerated() { c.generated = true }

// IsDirty сообщает, что сетка чанка устарела
func (c *Chunk) IsDirty() bool { return c.dirty }

// MarkDirty помечает сетку устаревшей (например, после изменения соседа)
func (c *Chunk) MarkDirty() { c.dirty = true }

// ClearDirty сбрасывает флаг после построения сетки
func (c *Chunk) ClearDirty() { c.dirty = false }

// ChangeCounter возвращает число изменивших значение записей
func (c *Chunk) ChangeCounter() int { return c.changeCounter }

// SetResolver подключает побочную таблицу addressed-ячеек
func (c *Chunk) SetResolver(r block.Resolver) { c.resolver = r }

// Resolver возвращает подключённую побочную таблицу
func (c *Chunk) Resolver() block.Resolver { return c.resolver }

// ToWorld переводит относительную позицию в мировую
func (c *Chunk) ToWorld(r vec.Vec3) vec.Vec3 { return c.pos.Add(r) }

// NonEmptyCount считает непустые ячейки
func (c *Chunk) NonEmptyCount() int {
	n := 0
	for _, b := range c.blocks {
		if !b.IsEmpty() {
			n++
		}
	}
	return n
}

// Bytes возвращает массив ячеек в little-endian (2 байта на ячейку)
func (c *Chunk) Bytes() []byte {
	out := make([]byte, 2*ChunkVolume)
	for i, b := range c.blocks {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(b))
	}
	return out
}

// Digest 64-битный хеш массива ячеек (xxhash)
func (c *Chunk) Digest() uint64 {
	return xxhash.Sum64(c.Bytes())
}
