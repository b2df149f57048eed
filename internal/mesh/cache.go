package mesh

import (
	"sort"

	"github.com/annel0/voxelcore/internal/vec"
)

// Cache опубликованные сетки по углу чанка
type Cache struct {
	meshes map[vec.Vec3]*Mesh
}

// NewCache создаёт пустой кеш сеток
func NewCache() *Cache {
	return &Cache{meshes: make(map[vec.Vec3]*Mesh)}
}

// Put публикует сетку, заменяя прежнюю
func (c *Cache) Put(corner vec.Vec3, m *Mesh) { c.meshes[corner] = m }

// Get возвращает опубликованную сетку
func (c *Cache) Get(corner vec.Vec3) (*Mesh, bool) {
	m, ok := c.meshes[corner]
	return m, ok
}

// Delete удаляет сетку; true, если она была
func (c *Cache) Delete(corner vec.Vec3) bool {
	if _, ok := c.meshes[corner]; !ok {
		return false
	}
	delete(c.meshes, corner)
	return true
}

// Len число сеток
func (c *Cache) Len() int { return len(c.meshes) }

// Corners углы опубликованных сеток в порядке (y, z, x)
func (c *Cache) Corners() []vec.Vec3 {
	out := make([]vec.Vec3, 0, len(c.meshes))
	for p := range c.meshes {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
	return out
}

// TotalFaces сумма граней по всем сеткам
func (c *Cache) TotalFaces() int {
	n := 0
	for _, m := range c.meshes {
		n += m.FaceCount()
	}
	return n
}
