package cells

import "fmt"

// MaskedCellBuffer couples a CellBuffer with a Mask of identical length,
// paired 1:1 by index. The mask tracks which cells are valid across
// operations and which should be treated as no-data.
//
// The length invariant is enforced at every construction point: building a
// masked buffer from a buffer and mask of different lengths is a programmer
// error and panics.
type MaskedCellBuffer struct {
	buffer *CellBuffer
	mask   *Mask
}

// NewMaskedCellBuffer combines a buffer and a mask. Panics if their lengths
// differ.
func NewMaskedCellBuffer(buffer *CellBuffer, mask *Mask) *MaskedCellBuffer {
	if buffer.Len() != mask.Len() {
		panic(fmt.Sprintf("cells: buffer and mask must have the same length: %d != %d",
			buffer.Len(), mask.Len()))
	}

	return &MaskedCellBuffer{buffer: buffer, mask: mask}
}

// MaskedFromBuffer attaches an all-valid mask to a buffer.
func MaskedFromBuffer(buffer *CellBuffer) *MaskedCellBuffer {
	return NewMaskedCellBuffer(buffer, FillMask(buffer.Len(), true))
}

// MaskedFromSlice wraps a native slice with an all-valid mask.
func MaskedFromSlice[T Encoding](data []T) *MaskedCellBuffer {
	return MaskedFromBuffer(FromSlice(data))
}

// FromSliceWithNoData wraps a native slice, marking invalid every cell that
// matches the no-data policy's sentinel. With the NoDataNone policy the
// whole mask stays valid.
func FromSliceWithNoData[T Encoding](data []T, nodata NoData[T]) *MaskedCellBuffer {
	buffer := FromSlice(data)
	mask := FillMask(buffer.Len(), true)
	for i := range buffer.Len() {
		if nodata.Matches(buffer.Get(i)) {
			mask.Set(i, false)
		}
	}

	return NewMaskedCellBuffer(buffer, mask)
}

// FillMaskedCellBufferFunc builds value and validity independently from two
// index-addressed generators, the primary construction path for synthetic
// data.
func FillMaskedCellBufferFunc[T Encoding](length int, fn func(int) (T, bool)) *MaskedCellBuffer {
	data := make([]T, length)
	bits := make([]bool, length)
	for i := range length {
		data[i], bits[i] = fn(i)
	}

	return NewMaskedCellBuffer(FromSlice(data), NewMask(bits))
}

// Buffer returns the underlying cell buffer.
func (m *MaskedCellBuffer) Buffer() *CellBuffer {
	return m.buffer
}

// Mask returns the underlying validity mask.
func (m *MaskedCellBuffer) Mask() *Mask {
	return m.mask
}

// Split decomposes the masked buffer back into its two parts.
func (m *MaskedCellBuffer) Split() (*CellBuffer, *Mask) {
	return m.buffer, m.mask
}

// Len returns the number of cells.
func (m *MaskedCellBuffer) Len() int {
	return m.buffer.Len()
}

// CellType returns the encoding tag of the underlying buffer.
func (m *MaskedCellBuffer) CellType() CellType {
	return m.buffer.CellType()
}

// Get returns the cell at idx, ignoring the mask.
func (m *MaskedCellBuffer) Get(idx int) CellValue {
	return m.buffer.Get(idx)
}

// Put stores value at idx, leaving the mask untouched. Same failure modes
// as CellBuffer.Put.
func (m *MaskedCellBuffer) Put(idx int, value CellValue) error {
	return m.buffer.Put(idx, value)
}

// GetMasked returns the cell at idx and true when it is valid, or a zero
// CellValue and false when it is masked out.
func (m *MaskedCellBuffer) GetMasked(idx int) (CellValue, bool) {
	if !m.mask.Get(idx) {
		return CellValue{}, false
	}

	return m.buffer.Get(idx), true
}

// GetWithMask returns the cell at idx together with its validity flag. A
// false flag means the value should be considered invalid.
func (m *MaskedCellBuffer) GetWithMask(idx int) (CellValue, bool) {
	return m.buffer.Get(idx), m.mask.Get(idx)
}

// PutWithMask stores value and its validity flag at idx.
func (m *MaskedCellBuffer) PutWithMask(idx int, value CellValue, valid bool) error {
	if err := m.buffer.Put(idx, value); err != nil {
		return err
	}
	m.mask.Set(idx, valid)

	return nil
}

// Counts returns the number of valid and invalid cells.
func (m *MaskedCellBuffer) Counts() (valid, invalid int) {
	return m.mask.Counts()
}

// Convert re-encodes the underlying buffer as ct and carries the mask
// forward unchanged. Same failure modes as CellBuffer.Convert.
func (m *MaskedCellBuffer) Convert(ct CellType) (*MaskedCellBuffer, error) {
	conv, err := m.buffer.Convert(ct)
	if err != nil {
		return nil, err
	}
	if conv == m.buffer {
		conv = m.buffer.Clone()
	}

	return NewMaskedCellBuffer(conv, m.mask.Clone()), nil
}

// MinMax returns the smallest and largest valid cell values. Invalid cells
// never influence the result. The fold is seeded with the encoding's
// (Max, Min) pair, so a buffer with no valid cells yields that inverted
// pair; callers can detect the case with min.Cmp(max) > 0.
func (m *MaskedCellBuffer) MinMax() (CellValue, CellValue) {
	lo, hi := m.CellType().Max(), m.CellType().Min()
	for i := range m.Len() {
		v, valid := m.GetMasked(i)
		if !valid {
			continue
		}
		lo = lo.MinValue(v)
		hi = hi.MaxValue(v)
	}

	return lo, hi
}

// Extend appends (value, validity) pairs. The two slices must have equal
// length; values convert into the buffer's encoding with the usual
// narrowing failure mode.
func (m *MaskedCellBuffer) Extend(values []CellValue, valid []bool) error {
	if len(values) != len(valid) {
		panic(fmt.Sprintf("cells: values and mask must have the same length: %d != %d",
			len(values), len(valid)))
	}
	for i, v := range values {
		if err := m.buffer.Extend(v); err != nil {
			return err
		}
		m.mask.Extend(valid[i])
	}

	return nil
}

// ToSliceWithNoData converts the masked buffer to a native []T, substituting
// the policy's sentinel at every invalid position. With the NoDataNone
// policy no substitution happens and invalid cells keep their stored
// values. The returned slice is always freshly allocated.
func ToSliceWithNoData[T Encoding](m *MaskedCellBuffer, nodata NoData[T]) ([]T, error) {
	raw, err := ToSlice[T](m.buffer)
	if err != nil {
		return nil, err
	}

	out := make([]T, len(raw))
	copy(out, raw)

	if sentinel, ok := nodata.Value(); ok {
		for i := range out {
			if !m.mask.Get(i) {
				out[i] = sentinel
			}
		}
	}

	return out, nil
}

// Equal reports whether m and other hold equal buffers and equal masks.
func (m *MaskedCellBuffer) Equal(other *MaskedCellBuffer) bool {
	return m.buffer.Equal(other.buffer) && m.mask.Equal(other.mask)
}

// String renders the masked buffer as
// "<type>MaskedCellBuffer(<buffer>, <mask>)".
func (m *MaskedCellBuffer) String() string {
	return fmt.Sprintf("%sMaskedCellBuffer(%s, %s)", m.CellType(), m.buffer, m.mask)
}
