package mesh

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/annel0/voxelcore/internal/world"
	"github.com/klauspost/compress/zstd"
)

// ErrBadMeshDump возвращается для повреждённых или чужих дампов сеток
var ErrBadMeshDump = errors.New("mesh: bad mesh dump")

var dumpMagic = [4]byte{'V', 'X', 'M', '1'}

// Предел граней одного чанка: все шесть граней каждой ячейки
const maxDumpVertices = 4 * 6 * world.ChunkVolume

var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

func codecs() (*zstd.Encoder, *zstd.Decoder, error) {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil)
	})
	return encoder, decoder, codecErr
}

// Marshal сериализует сетку: магия VXM1 и сжатое zstd тело
// (uniform, число вершин и индексов, буферы в little-endian).
func Marshal(m *Mesh) ([]byte, error) {
	enc, _, err := codecs()
	if err != nil {
		return nil, fmt.Errorf("init zstd: %w", err)
	}

	var body bytes.Buffer
	header := []int32{m.Uniform.X, m.Uniform.Y, m.Uniform.Z}
	if err := binary.Write(&body, binary.LittleEndian, header); err != nil {
		return nil, err
	}
	counts := []uint32{uint32(len(m.Vertices)), uint32(len(m.Indices))}
	if err := binary.Write(&body, binary.LittleEndian, counts); err != nil {
		return nil, err
	}
	body.Write(m.VertexBytes())
	body.Write(m.IndexBytes())

	out := append([]byte(nil), dumpMagic[:]...)
	return enc.EncodeAll(body.Bytes(), out), nil
}

// Unmarshal восстанавливает сетку из Marshal
func Unmarshal(data []byte) (*Mesh, error) {
	if len(data) < len(dumpMagic) || !bytes.Equal(data[:len(dumpMagic)], dumpMagic[:]) {
		return nil, fmt.Errorf("%w: missing magic", ErrBadMeshDump)
	}
	_, dec, err := codecs()
	if err != nil {
		return nil, fmt.Errorf("init zstd: %w", err)
	}
	raw, err := dec.DecodeAll(data[len(dumpMagic):], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMeshDump, err)
	}

	r := bytes.NewReader(raw)
	var header [3]int32
	var counts [2]uint32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadMeshDump, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &counts); err != nil {
		return nil, fmt.Errorf("%w: counts: %v", ErrBadMeshDump, err)
	}
	nv, ni := counts[0], counts[1]
	if nv > maxDumpVertices || nv%4 != 0 || ni != nv/4*6 {
		return nil, fmt.Errorf("%w: inconsistent counts vertices=%d indices=%d", ErrBadMeshDump, nv, ni)
	}
	if r.Len() != int(4*(nv+ni)) {
		return nil, fmt.Errorf("%w: body length %d, expected %d", ErrBadMeshDump, r.Len(), 4*(nv+ni))
	}

	m := &Mesh{
		Uniform:  Uniform{X: header[0], Y: header[1], Z: header[2]},
		Vertices: make([]uint32, nv),
		Indices:  make([]uint32, ni),
	}
	if err := binary.Read(r, binary.LittleEndian, m.Vertices); err != nil {
		return nil, fmt.Errorf("%w: vertices: %v", ErrBadMeshDump, err)
	}
	if err := binary.Read(r, binary.LittleEndian, m.Indices); err != nil {
		return nil, fmt.Errorf("%w: indices: %v", ErrBadMeshDump, err)
	}
	for _, idx := range m.Indices {
		if idx >= nv {
			return nil, fmt.Errorf("%w: index %d out of %d vertices", ErrBadMeshDump, idx, nv)
		}
	}
	return m, nil
}

// Encode записывает дамп сетки в w
func Encode(w io.Writer, m *Mesh) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Decode читает дамп сетки из r
func Decode(r io.Reader) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
