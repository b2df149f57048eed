package world

import (
	"math"

	"github.com/annel0/voxelcore/internal/util"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
	"golang.org/x/sync/errgroup"
)

// GeneratorConfig параметры рельефа
type GeneratorConfig struct {
	Seed     uint32
	SeaLevel int     // Базовая высота поверхности
	Delta    int     // Амплитуда отклонения от SeaLevel
	Scale    float64 // Горизонтальный масштаб шума
	Workers  int     // Параллельные обработчики на чанк (<=1: последовательно)

	SurfaceBlock  block.TypeID
	InteriorBlock block.TypeID
}

// DefaultGeneratorConfig возвращает стандартные параметры
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:          0,
		SeaLevel:      10,
		Delta:         5,
		Scale:         15,
		Workers:       1,
		SurfaceBlock:  block.SurfaceBlockID,
		InteriorBlock: block.InteriorBlockID,
	}
}

// Generator заполняет чанки рельефом по карте высот из шума Перлина.
// Результат зависит только от сида и мировых координат.
type Generator struct {
	cfg      GeneratorConfig
	noise    *util.Noise
	surface  block.Packed
	interior block.Packed
}

// NewGenerator создаёт генератор
func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.Scale == 0 {
		cfg.Scale = 15
	}
	return &Generator{
		cfg:      cfg,
		noise:    util.NewNoise(int64(cfg.Seed)),
		surface:  block.Pack(cfg.SurfaceBlock, 0),
		interior: block.Pack(cfg.InteriorBlock, 0),
	}
}

// Config возвращает параметры генератора
func (g *Generator) Config() GeneratorConfig { return g.cfg }

// Height возвращает высоту поверхности в колонке (x, z): ячейки y < h заполнены
func (g *Generator) Height(x, z int) int {
	n := g.noise.Noise2D(float64(x)/g.cfg.Scale, float64(z)/g.cfg.Scale)
	return int(math.Floor(n*float64(g.cfg.Delta) + float64(g.cfg.SeaLevel)))
}

// Generate заполняет чанк, если он ещё не сгенерирован.
// Возвращает false для уже сгенерированного чанка.
func (g *Generator) Generate(c *Chunk) bool {
	if c.IsGenerated() {
		return false
	}
	g.Fill(c)
	c.MarkGenerated()
	c.MarkDirty()
	return true
}

// Fill записывает колонки рельефа. Ячейки выше поверхности не трогаются.
func (g *Generator) Fill(c *Chunk) {
	if g.cfg.Workers <= 1 {
		for x := 0; x < ChunkSize; x++ {
			g.fillSlab(c, x)
		}
		return
	}

	// Слои по x не пересекаются, поэтому запись идёт без блокировок
	var eg errgroup.Group
	eg.SetLimit(g.cfg.Workers)
	for x := 0; x < ChunkSize; x++ {
		x := x
		eg.Go(func() error {
			g.fillSlab(c, x)
			return nil
		})
	}
	_ = eg.Wait()
}

func (g *Generator) fillSlab(c *Chunk, lx int) {
	corner := c.Pos()
	for lz := 0; lz < ChunkSize; lz++ {
		h := g.Height(corner.X+lx, corner.Z+lz)
		top := h - corner.Y
		if top <= 0 {
			continue
		}
		if top > ChunkSize {
			top = ChunkSize
		}
		for ly := 0; ly < top; ly++ {
			v := g.interior
			if corner.Y+ly == h-1 {
				v = g.surface
			}
			c.blocks[Index(vec.Vec3{X: lx, Y: ly, Z: lz})] = v
		}
	}
}
