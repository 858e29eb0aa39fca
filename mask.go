package cells

import (
	"fmt"
	"strconv"
	"strings"
)

// Mask is a validity vector parallel to a CellBuffer: element i is true when
// cell i holds meaningful data. A Mask carries no numeric semantics and no
// cell type of its own.
type Mask struct {
	bits []bool
}

// NewMask wraps a boolean slice as a Mask without copying.
func NewMask(values []bool) *Mask {
	return &Mask{bits: values}
}

// FillMask creates a mask of the given length with every element set to
// value.
func FillMask(length int, value bool) *Mask {
	bits := make([]bool, length)
	if value {
		for i := range bits {
			bits[i] = true
		}
	}

	return &Mask{bits: bits}
}

// FillMaskFunc creates a mask of the given length whose element i is fn(i).
func FillMaskFunc(length int, fn func(int) bool) *Mask {
	bits := make([]bool, length)
	for i := range bits {
		bits[i] = fn(i)
	}

	return &Mask{bits: bits}
}

// Len returns the number of elements in the mask.
func (m *Mask) Len() int {
	return len(m.bits)
}

// Get returns element idx. Panics if idx is outside [0, Len()).
func (m *Mask) Get(idx int) bool {
	return m.bits[idx]
}

// Set stores value at idx. Panics if idx is outside [0, Len()).
func (m *Mask) Set(idx int, value bool) {
	m.bits[idx] = value
}

// Counts returns the number of valid (true) and invalid (false) elements.
func (m *Mask) Counts() (valid, invalid int) {
	for _, b := range m.bits {
		if b {
			valid++
		} else {
			invalid++
		}
	}

	return valid, invalid
}

// All reports whether every element equals value.
func (m *Mask) All(value bool) bool {
	for _, b := range m.bits {
		if b != value {
			return false
		}
	}

	return true
}

// And returns the elementwise conjunction of m and other. The operands must
// have equal length.
func (m *Mask) And(other *Mask) *Mask {
	out := m.Clone()
	out.AndAssign(other)

	return out
}

// AndAssign sets m to the elementwise conjunction of m and other.
func (m *Mask) AndAssign(other *Mask) {
	for i := range m.bits {
		m.bits[i] = m.bits[i] && other.bits[i]
	}
}

// Or returns the elementwise disjunction of m and other.
func (m *Mask) Or(other *Mask) *Mask {
	out := m.Clone()
	out.OrAssign(other)

	return out
}

// OrAssign sets m to the elementwise disjunction of m and other.
func (m *Mask) OrAssign(other *Mask) {
	for i := range m.bits {
		m.bits[i] = m.bits[i] || other.bits[i]
	}
}

// Not returns the elementwise complement of m.
func (m *Mask) Not() *Mask {
	out := m.Clone()
	out.NotAssign()

	return out
}

// NotAssign complements every element of m in place.
func (m *Mask) NotAssign() {
	for i := range m.bits {
		m.bits[i] = !m.bits[i]
	}
}

// Extend appends values to the mask.
func (m *Mask) Extend(values ...bool) {
	m.bits = append(m.bits, values...)
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	bits := make([]bool, len(m.bits))
	copy(bits, m.bits)

	return &Mask{bits: bits}
}

// Equal reports whether m and other have identical length and elements.
func (m *Mask) Equal(other *Mask) bool {
	if len(m.bits) != len(other.bits) {
		return false
	}
	for i := range m.bits {
		if m.bits[i] != other.bits[i] {
			return false
		}
	}

	return true
}

// Bools returns the backing boolean slice. The mask retains ownership; the
// caller must not modify it.
func (m *Mask) Bools() []bool {
	return m.bits
}

// String renders the mask as "Mask(true, false, ...)" with the same elision
// rule as CellBuffer.String.
func (m *Mask) String() string {
	parts := make([]string, 0, renderElideAfter+1)
	n := len(m.bits)
	if n > renderElideAfter {
		for i := range 5 {
			parts = append(parts, strconv.FormatBool(m.bits[i]))
		}
		parts = append(parts, "...")
		for i := n - 5; i < n; i++ {
			parts = append(parts, strconv.FormatBool(m.bits[i]))
		}
	} else {
		for _, b := range m.bits {
			parts = append(parts, strconv.FormatBool(b))
		}
	}

	return fmt.Sprintf("Mask(%s)", strings.Join(parts, ", "))
}
