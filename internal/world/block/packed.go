package block

import "fmt"

// Packed 16-битное значение ячейки чанка.
//
// Старший бит задаёт формат:
//
//	0 (inline):    биты 14..4: TypeID (0..2047), биты 3..0: вариант (0..15)
//	1 (addressed): биты 14..0: указатель (0..32767) в побочную таблицу чанка
//
// Значение 0 (id=0, variant=0): каноническая пустота.
type Packed uint16

// Format формат упакованной ячейки
type Format uint8

const (
	FormatInline Format = iota
	FormatAddressed
)

func (f Format) String() string {
	if f == FormatAddressed {
		return "addressed"
	}
	return "inline"
}

// TypeID индекс типа блока в палитре
type TypeID uint16

// Variant дополнительное состояние блока (ориентация половинки и т.п.)
type Variant uint8

const (
	formatBit   = 1 << 15
	idShift     = 4
	variantMask = 0xF
	pointerMask = 0x7FFF

	MaxTypeID  TypeID  = 2047
	MaxVariant Variant = 15
	MaxPointer uint16  = pointerMask

	// Empty каноническая пустая ячейка
	Empty Packed = 0
)

// Pack упаковывает inline-ячейку. Выход за диапазон: ошибка программиста.
func Pack(id TypeID, variant Variant) Packed {
	if id > MaxTypeID {
		panic(fmt.Sprintf("block: type id %d out of range [0, %d]", id, MaxTypeID))
	}
	if variant > MaxVariant {
		panic(fmt.Sprintf("block: variant %d out of range [0, %d]", variant, MaxVariant))
	}
	return Packed(uint16(id)<<idShift | uint16(variant))
}

// Addressed упаковывает указатель на запись побочной таблицы
func Addressed(ptr uint16) Packed {
	if ptr > MaxPointer {
		panic(fmt.Sprintf("block: pointer %d out of range [0, %d]", ptr, MaxPointer))
	}
	return Packed(formatBit | ptr)
}

// Format возвращает формат ячейки
func (p Packed) Format() Format {
	if p&formatBit != 0 {
		return FormatAddressed
	}
	return FormatInline
}

// IsInline сообщает, что ячейка хранит тип и вариант напрямую
func (p Packed) IsInline() bool { return p&formatBit == 0 }

// IsEmpty сообщает, что ячейка: каноническая пустота
func (p Packed) IsEmpty() bool { return p == Empty }

// ID возвращает тип блока. Для addressed-ячейки чтение запрещено.
func (p Packed) ID() TypeID {
	p.mustInline("ID")
	return TypeID((uint16(p) &^ formatBit) >> idShift)
}

// Variant возвращает вариант блока. Для addressed-ячейки чтение запрещено.
func (p Packed) Variant() Variant {
	p.mustInline("Variant")
	return Variant(uint16(p) & variantMask)
}

// Pointer возвращает указатель addressed-ячейки
func (p Packed) Pointer() uint16 {
	if p.IsInline() {
		panic(fmt.Sprintf("block: Pointer() on inline cell %#04x", uint16(p)))
	}
	return uint16(p) & pointerMask
}

func (p Packed) mustInline(op string) {
	if !p.IsInline() {
		panic(fmt.Sprintf("block: %s() on addressed cell %#04x without resolving side table", op, uint16(p)))
	}
}

func (p Packed) String() string {
	if p.IsInline() {
		return fmt.Sprintf("inline(id=%d,var=%d)", p.ID(), p.Variant())
	}
	return fmt.Sprintf("addressed(ptr=%d)", p.Pointer())
}

// Resolver разрешает addressed-ячейки через побочную таблицу чанка.
// Побочная таблица (сундуки, таблички) в ядре не реализована.
type Resolver interface {
	Resolve(ptr uint16) (Packed, bool)
}
