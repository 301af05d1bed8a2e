// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ktree

import (
	"fmt"

	"github.com/gaissmai/ktree/internal/bitops"
)

// BitMatrix is a dense row-major bit matrix, the uncompressed counterpart
// a KTree materialises into and is built from.
type BitMatrix struct {
	width, height int
	bits          *bitops.Sequence
}

// NewBitMatrix returns an empty, zero-dimensioned matrix.
func NewBitMatrix() *BitMatrix {
	return &BitMatrix{bits: bitops.NewSequence()}
}

// WithDimensions returns a width×height all-zero matrix.
func WithDimensions(width, height int) *BitMatrix {
	m := &BitMatrix{width: width, height: height, bits: bitops.NewSequence()}
	m.bits.AppendZeros(uint(width * height))
	return m
}

// FromBits builds a width×height matrix from a flat, row-major bit slice.
// Excess bits are discarded; a short slice is padded with 0s.
func FromBits(width, height int, data []bool) *BitMatrix {
	m := WithDimensions(width, height)
	n := width * height
	if len(data) < n {
		n = len(data)
	}
	for i := range n {
		if data[i] {
			m.bits.SetTo(uint(i), true)
		}
	}
	return m
}

// Width returns the matrix's width.
func (m *BitMatrix) Width() int { return m.width }

// Height returns the matrix's height.
func (m *BitMatrix) Height() int { return m.height }

func (m *BitMatrix) checkBounds(x, y int) error {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return fmt.Errorf("%w: (%d,%d) not in [0,%d)x[0,%d)", ErrOutOfBounds, x, y, m.width, m.height)
	}
	return nil
}

// Get returns the bit at (x, y).
func (m *BitMatrix) Get(x, y int) (bool, error) {
	if err := m.checkBounds(x, y); err != nil {
		return false, wrapRead(err)
	}
	return m.bits.Test(uint(y*m.width + x)), nil
}

// Set changes the bit at (x, y).
func (m *BitMatrix) Set(x, y int, state bool) error {
	if err := m.checkBounds(x, y); err != nil {
		return wrapWrite(err)
	}
	m.bits.SetTo(uint(y*m.width+x), state)
	return nil
}

// GetRow returns the bits of row y, ordered by column.
func (m *BitMatrix) GetRow(y int) ([]bool, error) {
	if y < 0 || y >= m.height {
		return nil, wrapRead(fmt.Errorf("%w: row %d not in [0,%d)", ErrOutOfBounds, y, m.height))
	}
	row := make([]bool, m.width)
	for x := range m.width {
		row[x] = m.bits.Test(uint(y*m.width + x))
	}
	return row, nil
}

// GetColumn returns the bits of column x, ordered by row.
func (m *BitMatrix) GetColumn(x int) ([]bool, error) {
	if x < 0 || x >= m.width {
		return nil, wrapRead(fmt.Errorf("%w: column %d not in [0,%d)", ErrOutOfBounds, x, m.width))
	}
	col := make([]bool, m.height)
	for y := range m.height {
		col[y] = m.bits.Test(uint(y*m.width + x))
	}
	return col, nil
}

// ToRows returns the matrix as a slice of row bit-slices.
func (m *BitMatrix) ToRows() [][]bool {
	rows := make([][]bool, m.height)
	for y := range m.height {
		row, _ := m.GetRow(y)
		rows[y] = row
	}
	return rows
}

// IntoRows returns the matrix as a slice of row bit-slices. Unlike
// [BitMatrix.ToRows] it documents intent to hand off the matrix's
// contents rather than merely inspect them.
func (m *BitMatrix) IntoRows() [][]bool {
	return m.ToRows()
}

// ToColumns returns the matrix as a slice of column bit-slices.
func (m *BitMatrix) ToColumns() [][]bool {
	cols := make([][]bool, m.width)
	for x := range m.width {
		col, _ := m.GetColumn(x)
		cols[x] = col
	}
	return cols
}

// Bits returns the matrix's bits as a flat, row-major slice.
func (m *BitMatrix) Bits() []bool {
	return m.bits.Bools()
}

// ShrinkToFit rebuilds the matrix's backing sequence tightly, sized to
// exactly its current bits.
func (m *BitMatrix) ShrinkToFit() {
	m.bits = bitops.FromBools(m.bits.Bools())
}

// ResizeWidth changes the matrix's width, padding new columns with 0s or
// discarding trailing columns as needed, preserving each row's content.
//
// The new width generally isn't a multiple of the old one, so each row's
// shift can't be expressed as a single aligned block insert/remove; the
// matrix is rebuilt row by row instead.
func (m *BitMatrix) ResizeWidth(width int) {
	if width == m.width {
		return
	}

	newBits := make([]bool, width*m.height)
	for y := range m.height {
		row, _ := m.GetRow(y)
		n := width
		if len(row) < n {
			n = len(row)
		}
		copy(newBits[y*width:y*width+n], row[:n])
	}
	m.width = width
	m.bits = bitops.FromBools(newBits)
}

// ResizeHeight changes the matrix's height, padding new rows with 0s or
// discarding trailing rows as needed.
func (m *BitMatrix) ResizeHeight(height int) {
	if height == m.height {
		return
	}
	if height > m.height {
		m.bits.AppendZeros(uint((height - m.height) * m.width))
	} else {
		newBits := m.bits.Bools()[:height*m.width]
		m.bits = bitops.FromBools(newBits)
	}
	m.height = height
}
