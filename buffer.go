package cells

import (
	"fmt"
	"iter"

	"github.com/s22s/erased-cells/errs"
)

// CellBuffer is a homogeneous, flat sequence of values of one encoding,
// tagged with its CellType. Position is significant: index i is cell i.
//
// A buffer owns its backing slice exclusively; Clone duplicates the storage
// and arithmetic allocates fresh results. Indexing outside [0, Len()) is a
// programmer error and panics.
type CellBuffer struct {
	ct   CellType
	data any // one of []uint8 ... []float64, matching ct
}

// FromSlice wraps a native slice as a CellBuffer without copying. The buffer
// takes ownership of data; the caller must not modify it afterwards.
func FromSlice[T Encoding](data []T) *CellBuffer {
	return &CellBuffer{ct: CellTypeOf[T](), data: data}
}

// NewCellBuffer creates a buffer of the given length filled with the
// encoding's zero value.
func NewCellBuffer(length int, ct CellType) *CellBuffer {
	switch ct {
	case UInt8:
		return FromSlice(make([]uint8, length))
	case UInt16:
		return FromSlice(make([]uint16, length))
	case UInt32:
		return FromSlice(make([]uint32, length))
	case UInt64:
		return FromSlice(make([]uint64, length))
	case Int8:
		return FromSlice(make([]int8, length))
	case Int16:
		return FromSlice(make([]int16, length))
	case Int32:
		return FromSlice(make([]int32, length))
	case Int64:
		return FromSlice(make([]int64, length))
	case Float32:
		return FromSlice(make([]float32, length))
	case Float64:
		return FromSlice(make([]float64, length))
	default:
		panic("cells: unsupported cell type")
	}
}

// FillCellBuffer creates a buffer of the given length with every cell set to
// value, encoded with value's cell type.
func FillCellBuffer(length int, value CellValue) *CellBuffer {
	buf := NewCellBuffer(length, value.CellType())
	for i := range length {
		buf.putUnchecked(i, value)
	}

	return buf
}

// FillCellBufferFunc creates a buffer of the given length whose cell i holds
// fn(i).
func FillCellBufferFunc[T Encoding](length int, fn func(int) T) *CellBuffer {
	data := make([]T, length)
	for i := range data {
		data[i] = fn(i)
	}

	return FromSlice(data)
}

// ToSlice converts the buffer to a native []T, failing with a wrapped
// errs.ErrNarrowing if the buffer's encoding does not fit into T. When T
// matches the buffer's encoding the backing slice is returned without
// copying.
func ToSlice[T Encoding](b *CellBuffer) ([]T, error) {
	conv, err := b.Convert(CellTypeOf[T]())
	if err != nil {
		return nil, err
	}

	return asSlice[T](conv), nil
}

// Len returns the number of cells in the buffer.
func (b *CellBuffer) Len() int {
	switch d := b.data.(type) {
	case []uint8:
		return len(d)
	case []uint16:
		return len(d)
	case []uint32:
		return len(d)
	case []uint64:
		return len(d)
	case []int8:
		return len(d)
	case []int16:
		return len(d)
	case []int32:
		return len(d)
	case []int64:
		return len(d)
	case []float32:
		return len(d)
	case []float64:
		return len(d)
	default:
		panic("cells: unsupported cell type")
	}
}

// CellType returns the encoding tag of the buffer.
func (b *CellBuffer) CellType() CellType {
	return b.ct
}

// Get returns the cell at idx. Panics if idx is outside [0, Len()).
func (b *CellBuffer) Get(idx int) CellValue {
	switch d := b.data.(type) {
	case []uint8:
		return NewCellValue(d[idx])
	case []uint16:
		return NewCellValue(d[idx])
	case []uint32:
		return NewCellValue(d[idx])
	case []uint64:
		return NewCellValue(d[idx])
	case []int8:
		return NewCellValue(d[idx])
	case []int16:
		return NewCellValue(d[idx])
	case []int32:
		return NewCellValue(d[idx])
	case []int64:
		return NewCellValue(d[idx])
	case []float32:
		return NewCellValue(d[idx])
	case []float64:
		return NewCellValue(d[idx])
	default:
		panic("cells: unsupported cell type")
	}
}

// Put stores value at idx, converting it to the buffer's encoding first. A
// wrapped errs.ErrNarrowing is returned when the value's encoding does not
// fit. Panics if idx is outside [0, Len()).
func (b *CellBuffer) Put(idx int, value CellValue) error {
	conv, err := value.Convert(b.ct)
	if err != nil {
		return err
	}

	b.putUnchecked(idx, conv)

	return nil
}

// putUnchecked stores a value already encoded with the buffer's cell type.
func (b *CellBuffer) putUnchecked(idx int, value CellValue) {
	switch d := b.data.(type) {
	case []uint8:
		d[idx] = MustGet[uint8](value)
	case []uint16:
		d[idx] = MustGet[uint16](value)
	case []uint32:
		d[idx] = MustGet[uint32](value)
	case []uint64:
		d[idx] = MustGet[uint64](value)
	case []int8:
		d[idx] = MustGet[int8](value)
	case []int16:
		d[idx] = MustGet[int16](value)
	case []int32:
		d[idx] = MustGet[int32](value)
	case []int64:
		d[idx] = MustGet[int64](value)
	case []float32:
		d[idx] = MustGet[float32](value)
	case []float64:
		d[idx] = MustGet[float64](value)
	default:
		panic("cells: unsupported cell type")
	}
}

// Values returns an iterator over the cells of the buffer in index order,
// materializing each as a CellValue.
func (b *CellBuffer) Values() iter.Seq[CellValue] {
	return func(yield func(CellValue) bool) {
		for i := range b.Len() {
			if !yield(b.Get(i)) {
				return
			}
		}
	}
}

// Convert returns a copy of the buffer re-encoded as ct.
//
// The narrowing guard is evaluated once up front against the buffer's
// encoding, so conversion either fails atomically with a wrapped
// errs.ErrNarrowing or succeeds for every element. Converting to the
// buffer's own encoding returns the buffer unchanged (no copy).
func (b *CellBuffer) Convert(ct CellType) (*CellBuffer, error) {
	if ct == b.ct {
		return b, nil
	}
	if !b.ct.CanFitInto(ct) {
		return nil, fmt.Errorf("%w: from %s buffer to %s", errs.ErrNarrowing, b.ct, ct)
	}

	out := NewCellBuffer(b.Len(), ct)
	for i := range b.Len() {
		out.putUnchecked(i, b.Get(i).convertUnchecked(ct))
	}

	return out, nil
}

// MinMax returns the smallest and largest cell values under the total order.
// The fold is seeded with the encoding's (Max, Min) pair, so an empty buffer
// yields that inverted pair.
func (b *CellBuffer) MinMax() (CellValue, CellValue) {
	lo, hi := b.ct.Max(), b.ct.Min()
	for v := range b.Values() {
		lo = lo.MinValue(v)
		hi = hi.MaxValue(v)
	}

	return lo, hi
}

// Extend appends values to the buffer, converting each into the buffer's
// existing encoding. The buffer's cell type never changes; a value that does
// not fit fails the whole call with a wrapped errs.ErrNarrowing, leaving
// already-appended values in place.
func (b *CellBuffer) Extend(values ...CellValue) error {
	for _, v := range values {
		conv, err := v.Convert(b.ct)
		if err != nil {
			return err
		}
		b.appendUnchecked(conv)
	}

	return nil
}

// AppendSlice appends native values to the buffer, converting each into the
// buffer's encoding.
func AppendSlice[T Encoding](b *CellBuffer, values []T) error {
	for _, v := range values {
		if err := b.Extend(NewCellValue(v)); err != nil {
			return err
		}
	}

	return nil
}

func (b *CellBuffer) appendUnchecked(value CellValue) {
	switch d := b.data.(type) {
	case []uint8:
		b.data = append(d, MustGet[uint8](value))
	case []uint16:
		b.data = append(d, MustGet[uint16](value))
	case []uint32:
		b.data = append(d, MustGet[uint32](value))
	case []uint64:
		b.data = append(d, MustGet[uint64](value))
	case []int8:
		b.data = append(d, MustGet[int8](value))
	case []int16:
		b.data = append(d, MustGet[int16](value))
	case []int32:
		b.data = append(d, MustGet[int32](value))
	case []int64:
		b.data = append(d, MustGet[int64](value))
	case []float32:
		b.data = append(d, MustGet[float32](value))
	case []float64:
		b.data = append(d, MustGet[float64](value))
	default:
		panic("cells: unsupported cell type")
	}
}

// Clone returns a deep copy of the buffer.
func (b *CellBuffer) Clone() *CellBuffer {
	out := NewCellBuffer(b.Len(), b.ct)
	for i := range b.Len() {
		out.putUnchecked(i, b.Get(i))
	}

	return out
}
