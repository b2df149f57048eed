package vec

// Vec3 представляет трехмерный вектор с целочисленными координатами
type Vec3 struct {
	X int
	Y int
	Z int
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Scale умножает вектор на целое число
func (v Vec3) Scale(k int) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// RemEuclid возвращает покомпонентный неотрицательный остаток от деления на n.
// Для отрицательных координат результат тоже лежит в [0, n).
func (v Vec3) RemEuclid(n int) Vec3 {
	return Vec3{
		X: RemEuclid(v.X, n),
		Y: RemEuclid(v.Y, n),
		Z: RemEuclid(v.Z, n),
	}
}

// SnapDown опускает каждую координату до ближайшего кратного n снизу
// (floor-rem-euclid): c = w - ((w mod n + n) mod n).
func (v Vec3) SnapDown(n int) Vec3 {
	return v.Sub(v.RemEuclid(n))
}

// InBox проверяет, что все координаты лежат в [0, n)
func (v Vec3) InBox(n int) bool {
	return uint(v.X) < uint(n) && uint(v.Y) < uint(n) && uint(v.Z) < uint(n)
}

// RemEuclid возвращает остаток от деления a на n в диапазоне [0, n).
func RemEuclid(a, n int) int {
	return (a%n + n) % n
}
