package render

import (
	"fmt"
	"sync"

	"github.com/annel0/voxelcore/internal/mesh"
	"github.com/annel0/voxelcore/internal/vec"
)

// Backend потребитель сеток на стороне GPU. Для каждого чанка получает
// вершинный и индексный буферы и uniform с углом чанка.
type Backend interface {
	Upload(corner vec.Vec3, m *mesh.Mesh) error
	Release(corner vec.Vec3)
	Draw(corner vec.Vec3, m *mesh.Mesh)
}

// Stats счётчики безголового бэкенда
type Stats struct {
	Uploads  int   `json:"uploads"`
	Releases int   `json:"releases"`
	Draws    int   `json:"draws"`
	Resident int   `json:"resident"`
	Bytes    int64 `json:"bytes"`
}

type residentMesh struct {
	vertices []byte
	indices  []byte
	uniform  []byte
}

func (r residentMesh) size() int64 {
	return int64(len(r.vertices) + len(r.indices) + len(r.uniform))
}

// Headless хранит буферы в памяти вместо GPU
type Headless struct {
	mu       sync.Mutex
	resident map[vec.Vec3]residentMesh
	stats    Stats

	// MaxBytes ограничивает объём загруженных буферов (0: без ограничения)
	MaxBytes int64
}

// NewHeadless создаёт безголовый бэкенд
func NewHeadless() *Headless {
	return &Headless{resident: make(map[vec.Vec3]residentMesh)}
}

// Upload копирует буферы сетки. Пустые буферы для GPU недопустимы.
func (h *Headless) Upload(corner vec.Vec3, m *mesh.Mesh) error {
	if m == nil || m.IsEmpty() {
		return fmt.Errorf("render: empty mesh for chunk %+v", corner)
	}
	r := residentMesh{
		vertices: m.VertexBytes(),
		indices:  m.IndexBytes(),
		uniform:  m.Uniform.Bytes(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	total := h.stats.Bytes + r.size()
	if old, ok := h.resident[corner]; ok {
		total -= old.size()
	}
	if h.MaxBytes > 0 && total > h.MaxBytes {
		return fmt.Errorf("render: buffer budget exceeded (%d > %d bytes)", total, h.MaxBytes)
	}
	h.resident[corner] = r
	h.stats.Bytes = total
	h.stats.Uploads++
	h.stats.Resident = len(h.resident)
	return nil
}

// Release освобождает буферы чанка
func (h *Headless) Release(corner vec.Vec3) {
	h.mu.Lock()
	defer h.mu.Unlock()
	old, ok := h.resident[corner]
	if !ok {
		return
	}
	delete(h.resident, corner)
	h.stats.Bytes -= old.size()
	h.stats.Releases++
	h.stats.Resident = len(h.resident)
}

// Draw учитывает отрисовку загруженной сетки
func (h *Headless) Draw(corner vec.Vec3, _ *mesh.Mesh) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.resident[corner]; ok {
		h.stats.Draws++
	}
}

// Resident сообщает, загружены ли буферы чанка
func (h *Headless) Resident(corner vec.Vec3) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.resident[corner]
	return ok
}

// Stats возвращает снимок счётчиков
func (h *Headless) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}
