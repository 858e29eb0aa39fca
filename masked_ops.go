package cells

// Masked arithmetic delegates to the underlying buffers and combines the
// validity masks with logical AND: a result cell is valid only when both
// operand cells were valid. Scalar operands are always valid, so buffer ⊕
// scalar operations carry the mask through unchanged.

// Add returns the elementwise sum with AND-combined masks.
func (m *MaskedCellBuffer) Add(other *MaskedCellBuffer) *MaskedCellBuffer {
	return m.zip(other, (*CellBuffer).Add)
}

// Sub returns the elementwise difference with AND-combined masks.
func (m *MaskedCellBuffer) Sub(other *MaskedCellBuffer) *MaskedCellBuffer {
	return m.zip(other, (*CellBuffer).Sub)
}

// Mul returns the elementwise product with AND-combined masks.
func (m *MaskedCellBuffer) Mul(other *MaskedCellBuffer) *MaskedCellBuffer {
	return m.zip(other, (*CellBuffer).Mul)
}

// Div returns the elementwise quotient with AND-combined masks.
func (m *MaskedCellBuffer) Div(other *MaskedCellBuffer) *MaskedCellBuffer {
	return m.zip(other, (*CellBuffer).Div)
}

func (m *MaskedCellBuffer) zip(other *MaskedCellBuffer, op func(*CellBuffer, *CellBuffer) *CellBuffer) *MaskedCellBuffer {
	buf := op(m.buffer, other.buffer)
	mask := FillMaskFunc(buf.Len(), func(i int) bool {
		return m.mask.Get(i) && other.mask.Get(i)
	})

	return NewMaskedCellBuffer(buf, mask)
}

// AddScalar adds value to every cell, leaving the mask unchanged.
func (m *MaskedCellBuffer) AddScalar(value CellValue) *MaskedCellBuffer {
	return NewMaskedCellBuffer(m.buffer.AddScalar(value), m.mask.Clone())
}

// SubScalar subtracts value from every cell, leaving the mask unchanged.
func (m *MaskedCellBuffer) SubScalar(value CellValue) *MaskedCellBuffer {
	return NewMaskedCellBuffer(m.buffer.SubScalar(value), m.mask.Clone())
}

// MulScalar multiplies every cell by value, leaving the mask unchanged.
func (m *MaskedCellBuffer) MulScalar(value CellValue) *MaskedCellBuffer {
	return NewMaskedCellBuffer(m.buffer.MulScalar(value), m.mask.Clone())
}

// DivScalar divides every cell by value, leaving the mask unchanged.
func (m *MaskedCellBuffer) DivScalar(value CellValue) *MaskedCellBuffer {
	return NewMaskedCellBuffer(m.buffer.DivScalar(value), m.mask.Clone())
}

// Negate negates every cell, leaving the mask unchanged.
func (m *MaskedCellBuffer) Negate() *MaskedCellBuffer {
	return NewMaskedCellBuffer(m.buffer.Negate(), m.mask.Clone())
}
