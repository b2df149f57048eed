package block

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPalette оборачивает все ошибки проверки палитры
var ErrInvalidPalette = errors.New("invalid palette")

var textIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Color запасной цвет блока в RGBA
type Color [4]uint8

// PaletteEntry описание одного типа блока
type PaletteEntry struct {
	Name   string // Отображаемое имя
	TextID string // Стабильный snake_case идентификатор
	Color  Color
	Shape  Shape
}

// Palette таблица типов блоков, индексируемая TypeID.
// После загрузки не меняется, поэтому её можно читать из любых систем.
type Palette struct {
	entries []PaletteEntry
	index   map[string]TypeID
	digest  string
}

// NewPalette проверяет записи и строит палитру.
// Запись 0 обязана иметь форму Empty: нулевая ячейка чанка: пустота.
func NewPalette(entries []PaletteEntry) (*Palette, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidPalette)
	}
	if len(entries) > int(MaxTypeID)+1 {
		return nil, fmt.Errorf("%w: %d entries exceed %d type ids", ErrInvalidPalette, len(entries), int(MaxTypeID)+1)
	}
	if entries[0].Shape != ShapeEmpty {
		return nil, fmt.Errorf("%w: entry 0 (%s) must have shape empty, got %s", ErrInvalidPalette, entries[0].TextID, entries[0].Shape)
	}

	p := &Palette{
		entries: make([]PaletteEntry, len(entries)),
		index:   make(map[string]TypeID, len(entries)),
	}
	copy(p.entries, entries)

	for i, e := range p.entries {
		if !textIDPattern.MatchString(e.TextID) {
			return nil, fmt.Errorf("%w: entry %d: id %q is not snake_case", ErrInvalidPalette, i, e.TextID)
		}
		if e.Shape >= shapeCount {
			return nil, fmt.Errorf("%w: entry %d (%s): unknown shape %d", ErrInvalidPalette, i, e.TextID, e.Shape)
		}
		if _, dup := p.index[e.TextID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidPalette, e.TextID)
		}
		p.index[e.TextID] = TypeID(i)
	}

	ids := make([]string, len(p.entries))
	for i, e := range p.entries {
		ids[i] = e.TextID + ":" + e.Shape.String()
	}
	sum := sha256.Sum256([]byte(strings.Join(ids, "\n")))
	p.digest = hex.EncodeToString(sum[:])
	return p, nil
}

// Lookup возвращает запись по id. Id вне палитры: ошибка программиста.
func (p *Palette) Lookup(id TypeID) PaletteEntry {
	if int(id) >= len(p.entries) {
		panic(fmt.Sprintf("block: palette id %d out of range [0, %d)", id, len(p.entries)))
	}
	return p.entries[id]
}

// Len количество типов в палитре
func (p *Palette) Len() int { return len(p.entries) }

// ByTextID ищет тип по строковому идентификатору
func (p *Palette) ByTextID(textID string) (TypeID, bool) {
	id, ok := p.index[textID]
	return id, ok
}

// MustID как ByTextID, но паникует при отсутствии
func (p *Palette) MustID(textID string) TypeID {
	id, ok := p.index[textID]
	if !ok {
		panic(fmt.Sprintf("block: palette has no %q", textID))
	}
	return id
}

// Digest SHA-256 упорядоченного списка id:shape
func (p *Palette) Digest() string { return p.digest }

// Entries возвращает копию всех записей
func (p *Palette) Entries() []PaletteEntry {
	out := make([]PaletteEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

// ShapeOf возвращает форму ячейки. Addressed-ячейка без разрешённой
// побочной таблицы считается пустой.
func (p *Palette) ShapeOf(c Packed) Shape {
	if !c.IsInline() {
		return ShapeEmpty
	}
	return p.Lookup(c.ID()).Shape
}

// Resolve превращает addressed-ячейку в inline через resolver.
// Без resolver'а или при промахе: Empty.
func (p *Palette) Resolve(c Packed, r Resolver) Packed {
	if c.IsInline() {
		return c
	}
	if r != nil {
		if v, ok := r.Resolve(c.Pointer()); ok && v.IsInline() {
			return v
		}
	}
	return Empty
}
