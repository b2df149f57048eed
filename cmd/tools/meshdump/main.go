package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/annel0/voxelcore/internal/mesh"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
	"github.com/annel0/voxelcore/internal/world/block"
)

func main() {
	var (
		seed    = flag.Uint("seed", 0, "Seed генератора")
		chunkAt = flag.String("chunk", "0,0,0", "Мировая позиция внутри чанка: x,y,z")
		radius  = flag.Int("radius", 1, "Сколько соседних чанков генерировать вокруг (для отсечения границ)")
		out     = flag.String("out", "", "Записать сетку в файл")
		in      = flag.String("in", "", "Прочитать сетку из файла и вывести сводку")
		palette = flag.String("palette", "", "Файл палитры (YAML/JSON); пусто: встроенная")
	)
	flag.Parse()

	if *in != "" {
		if err := inspect(*in); err != nil {
			log.Fatalf("❌ %v", err)
		}
		return
	}

	pos, err := parseVec(*chunkAt)
	if err != nil {
		log.Fatalf("❌ Неверный -chunk: %v", err)
	}

	p := block.DefaultPalette()
	if *palette != "" {
		if p, err = block.LoadPalette(*palette); err != nil {
			log.Fatalf("❌ Палитра: %v", err)
		}
	}

	cfg := world.DefaultGeneratorConfig()
	cfg.Seed = uint32(*seed)
	gen := world.NewGenerator(cfg)

	cache := world.NewChunkCache()
	center := world.ChunkCorner(pos)
	for dx := -*radius; dx <= *radius; dx++ {
		for dy := -*radius; dy <= *radius; dy++ {
			for dz := -*radius; dz <= *radius; dz++ {
				c, _ := cache.Load(center.Add(vec.Vec3{X: dx, Y: dy, Z: dz}.Scale(world.ChunkSize)))
				gen.Generate(c)
			}
		}
	}

	c, _ := cache.At(center)
	m, stats := mesh.NewMesher(p).Build(c, cache)
	fmt.Printf("chunk %v: blocks=%d faces=%d culled=%d vertices=%d indices=%d digest=%016x\n",
		center, c.NonEmptyCount(), stats.Emitted, stats.Culled, len(m.Vertices), len(m.Indices), c.Digest())

	if *out == "" {
		return
	}
	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer f.Close()
	if err := mesh.Encode(f, m); err != nil {
		log.Fatalf("❌ Запись сетки: %v", err)
	}
	fmt.Printf("записано в %s\n", *out)
}

func inspect(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := mesh.Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Printf("%s: uniform=%v vertices=%d indices=%d faces=%d bytes=%d\n",
		path, m.Uniform, len(m.Vertices), len(m.Indices), m.FaceCount(), m.SizeBytes())
	return nil
}

func parseVec(s string) (vec.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return vec.Vec3{}, fmt.Errorf("ожидалось x,y,z, получено %q", s)
	}
	var v [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return vec.Vec3{}, err
		}
		v[i] = n
	}
	return vec.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}
