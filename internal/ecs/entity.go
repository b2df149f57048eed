package ecs

// EntityID хранит индекс слота в младших 32 битах и поколение в старших.
// Слот 0 зарезервирован, нулевой EntityID никогда не бывает живым.
type EntityID uint64

func NewEntityID(index, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

type slot struct {
	generation uint32
	live       bool
}

// EntityPool выдаёт идентификаторы сущностей. Освобождённые слоты
// возвращаются в порядке уничтожения, поколение слота растёт при каждом
// уничтожении, так что старые ссылки перестают быть живыми.
type EntityPool struct {
	slots []slot
	free  []uint32
	head  int
	live  int
}

func NewEntityPool() *EntityPool {
	return &EntityPool{slots: make([]slot, 1, 256)}
}

func (p *EntityPool) Create() EntityID {
	var idx uint32
	if p.head < len(p.free) {
		idx = p.free[p.head]
		p.head++
		if p.head == len(p.free) {
			p.free, p.head = p.free[:0], 0
		}
	} else {
		idx = uint32(len(p.slots))
		p.slots = append(p.slots, slot{})
	}

	s := &p.slots[idx]
	s.live = true
	p.live++
	return NewEntityID(idx, s.generation)
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx == 0 || int(idx) >= len(p.slots) {
		return false
	}
	s := p.slots[idx]
	return s.live && s.generation == id.Generation()
}

// Destroy освобождает слот; false для мёртвой или устаревшей ссылки
func (p *EntityPool) Destroy(id EntityID) bool {
	if !p.Alive(id) {
		return false
	}
	s := &p.slots[id.Index()]
	s.live = false
	s.generation++
	p.free = append(p.free, id.Index())
	p.live--
	return true
}

// Len число живых сущностей
func (p *EntityPool) Len() int { return p.live }
