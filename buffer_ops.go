package cells

import (
	"cmp"
	"fmt"
	"strings"
)

// Binary buffer arithmetic zips the operands by index, unifying each pair of
// cells before applying the scalar operation. The operands need not share an
// encoding; the result encoding is the union of the two operand encodings.
// When the operands differ in length the zip stops at the shorter one.

// Add returns the elementwise sum of b and other.
func (b *CellBuffer) Add(other *CellBuffer) *CellBuffer {
	return b.zip(other, CellValue.Add)
}

// Sub returns the elementwise difference of b and other.
func (b *CellBuffer) Sub(other *CellBuffer) *CellBuffer {
	return b.zip(other, CellValue.Sub)
}

// Mul returns the elementwise product of b and other.
func (b *CellBuffer) Mul(other *CellBuffer) *CellBuffer {
	return b.zip(other, CellValue.Mul)
}

// Div returns the elementwise quotient of b and other.
func (b *CellBuffer) Div(other *CellBuffer) *CellBuffer {
	return b.zip(other, CellValue.Div)
}

func (b *CellBuffer) zip(other *CellBuffer, op func(CellValue, CellValue) CellValue) *CellBuffer {
	n := min(b.Len(), other.Len())
	out := NewCellBuffer(n, b.ct.Union(other.ct))
	for i := range n {
		out.putUnchecked(i, op(b.Get(i), other.Get(i)))
	}

	return out
}

// AddScalar returns b with value added to every cell (the scalar broadcasts).
func (b *CellBuffer) AddScalar(value CellValue) *CellBuffer {
	return b.broadcast(value, CellValue.Add)
}

// SubScalar returns b with value subtracted from every cell.
func (b *CellBuffer) SubScalar(value CellValue) *CellBuffer {
	return b.broadcast(value, CellValue.Sub)
}

// MulScalar returns b with every cell multiplied by value.
func (b *CellBuffer) MulScalar(value CellValue) *CellBuffer {
	return b.broadcast(value, CellValue.Mul)
}

// DivScalar returns b with every cell divided by value.
func (b *CellBuffer) DivScalar(value CellValue) *CellBuffer {
	return b.broadcast(value, CellValue.Div)
}

func (b *CellBuffer) broadcast(value CellValue, op func(CellValue, CellValue) CellValue) *CellBuffer {
	out := NewCellBuffer(b.Len(), b.ct.Union(value.CellType()))
	for i := range b.Len() {
		out.putUnchecked(i, op(b.Get(i), value))
	}

	return out
}

// Negate returns the elementwise negation of b. The result encoding follows
// CellValue.Neg: unsigned buffers widen to the signed encoding one step up.
func (b *CellBuffer) Negate() *CellBuffer {
	if b.Len() == 0 {
		return NewCellBuffer(0, b.ct)
	}

	out := NewCellBuffer(b.Len(), b.Get(0).Neg().CellType())
	for i := range b.Len() {
		out.putUnchecked(i, b.Get(i).Neg())
	}

	return out
}

// Compare orders b against other: first by cell type ordinal, then
// lexicographically by cell under the total order, then by length (a buffer
// that is a strict prefix of another orders before it). Returns -1, 0 or 1.
func (b *CellBuffer) Compare(other *CellBuffer) int {
	if c := cmp.Compare(b.ct, other.ct); c != 0 {
		return c
	}

	n := min(b.Len(), other.Len())
	for i := range n {
		if c := b.Get(i).Cmp(other.Get(i)); c != 0 {
			return c
		}
	}

	return cmp.Compare(b.Len(), other.Len())
}

// Equal reports whether b and other hold the same encoding, length and cell
// values.
func (b *CellBuffer) Equal(other *CellBuffer) bool {
	return b.Compare(other) == 0
}

// renderElideAfter is the element count beyond which String abbreviates.
const renderElideAfter = 10

// String renders the buffer as "<type>CellBuffer(v0, v1, ...)". Buffers
// longer than ten cells render only the first and last five, joined with an
// ellipsis, to keep diagnostics readable.
func (b *CellBuffer) String() string {
	parts := make([]string, 0, renderElideAfter+1)
	n := b.Len()
	if n > renderElideAfter {
		for i := range 5 {
			parts = append(parts, b.Get(i).String())
		}
		parts = append(parts, "...")
		for i := n - 5; i < n; i++ {
			parts = append(parts, b.Get(i).String())
		}
	} else {
		for i := range n {
			parts = append(parts, b.Get(i).String())
		}
	}

	return fmt.Sprintf("%sCellBuffer(%s)", b.ct, strings.Join(parts, ", "))
}
