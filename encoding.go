package cells

// Encoding is the constraint binding the ten supported Go primitive types to
// their CellType tags. The constraint deliberately lists exact types rather
// than underlying-type approximations: two values sharing a tag are then
// guaranteed to share an identical runtime representation, which is what
// makes the same-tag slice reinterpretation in FromSlice and ToSlice sound.
type Encoding interface {
	uint8 | uint16 | uint32 | uint64 | int8 | int16 | int32 | int64 | float32 | float64
}

// CellTypeOf returns the CellType covering T.
func CellTypeOf[T Encoding]() CellType {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return UInt8
	case uint16:
		return UInt16
	case uint32:
		return UInt32
	case uint64:
		return UInt64
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case float32:
		return Float32
	default:
		return Float64
	}
}

// asSlice reinterprets the buffer's backing storage as a []T.
//
// The Encoding constraint admits only exact primitive types, so when the tags
// agree the stored slice already is a []T and a checked type assertion is a
// zero-copy reinterpretation. Panics if the tags disagree; callers convert
// first.
func asSlice[T Encoding](b *CellBuffer) []T {
	if ct := CellTypeOf[T](); ct != b.ct {
		panic("cells: cell type mismatch: " + b.ct.String() + " buffer read as " + ct.String())
	}

	return b.data.([]T)
}
