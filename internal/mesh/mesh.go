package mesh

import (
	"encoding/binary"

	"github.com/annel0/voxelcore/internal/vec"
)

// Uniform угол чанка, который шейдер прибавляет к локальной позиции вершины
type Uniform struct {
	X, Y, Z int32
}

// UniformOf строит uniform по углу чанка
func UniformOf(corner vec.Vec3) Uniform {
	return Uniform{X: int32(corner.X), Y: int32(corner.Y), Z: int32(corner.Z)}
}

// Corner возвращает угол чанка
func (u Uniform) Corner() vec.Vec3 {
	return vec.Vec3{X: int(u.X), Y: int(u.Y), Z: int(u.Z)}
}

// Bytes возвращает uniform в little-endian (12 байт)
func (u Uniform) Bytes() []byte {
	out := make([]byte, 12)
	binary.LittleEndian.PutUint32(out[0:], uint32(u.X))
	binary.LittleEndian.PutUint32(out[4:], uint32(u.Y))
	binary.LittleEndian.PutUint32(out[8:], uint32(u.Z))
	return out
}

// Mesh геометрия одного чанка
type Mesh struct {
	Vertices []uint32
	Indices  []uint32
	Uniform  Uniform
}

// IsEmpty сообщает, что вершин нет. Пустые сетки не публикуются.
func (m *Mesh) IsEmpty() bool { return len(m.Vertices) == 0 }

// FaceCount число построенных граней
func (m *Mesh) FaceCount() int { return len(m.Vertices) / 4 }

// VertexBytes возвращает вершинный буфер в little-endian
func (m *Mesh) VertexBytes() []byte { return wordsToBytes(m.Vertices) }

// IndexBytes возвращает индексный буфер в little-endian
func (m *Mesh) IndexBytes() []byte { return wordsToBytes(m.Indices) }

// SizeBytes суммарный размер буферов для загрузки на GPU
func (m *Mesh) SizeBytes() int { return 4*(len(m.Vertices)+len(m.Indices)) + 12 }

func wordsToBytes(words []uint32) []byte {
	out := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[4*i:], w)
	}
	return out
}

// appendFace добавляет четыре вершины и шесть индексов грани
func (m *Mesh) appendFace(corners [4]vec.Vec3, r vec.Vec3, tileU, tileV uint32) {
	base := uint32(len(m.Vertices))
	for i, c := range corners {
		m.Vertices = append(m.Vertices, PackVertex(
			uint32(r.X+c.X), uint32(r.Y+c.Y), uint32(r.Z+c.Z),
			tileU+cornerUV[i][0], tileV+cornerUV[i][1],
		))
	}
	for _, idx := range faceIndices {
		m.Indices = append(m.Indices, base+idx)
	}
}
