// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ktree

import "fmt"

// Grow multiplies the matrix width by stemK, adding a new top stem layer
// above the current root. An empty tree only needs its recorded width and
// depth updated; a non-empty tree gets a new top stem, with only its first
// bit set, spliced in front of its stems.
func (t *KTree) Grow() {
	t.matrixWidth *= t.stemK
	t.maxSLayers++

	if t.leaves.Len() == 0 {
		return
	}

	stemLen := uint(t.stemLen())
	if err := t.stems.InsertBlock(0, stemLen); err != nil {
		panic(fmt.Sprintf("ktree: Grow: unreachable: %v", err))
	}
	t.stems.SetTo(0, true)
}

// Shrink divides the matrix width by stemK, removing the top stem layer.
// It fails without modifying the tree if the tree is already at its
// minimum width, or if shrinking would discard set bits recorded outside
// the new, smaller top-left region.
func (t *KTree) Shrink() error {
	stemLen := uint(t.stemLen())
	if t.matrixWidth <= t.leafK*intPow(t.stemK, 2) {
		return wrapWrite(fmt.Errorf("%w: matrix_width=%d", ErrCouldNotShrinkAlreadyMinimum, t.matrixWidth))
	}
	if !t.stems.AllZero(1, stemLen) {
		return wrapWrite(ErrCouldNotShrinkWouldLoseInformation)
	}

	t.shrinkUncheckedInternal()
	return nil
}

// ShrinkUnchecked divides the matrix width by stemK without verifying
// that the operation is safe. Callers must ensure the matrix is not
// already at its minimum width and that every bit outside the new,
// smaller top-left region is unset; violating either corrupts the tree.
func (t *KTree) ShrinkUnchecked() {
	t.shrinkUncheckedInternal()
}

func (t *KTree) shrinkUncheckedInternal() {
	stemLen := uint(t.stemLen())
	t.matrixWidth /= t.stemK
	t.maxSLayers--
	if t.leaves.Len() == 0 {
		// An empty tree keeps its single zeroed top stem, as in Grow.
		return
	}
	if err := t.stems.RemoveBlock(0, stemLen); err != nil {
		panic(fmt.Sprintf("ktree: Shrink: unreachable: %v", err))
	}
}

// ToMatrix materialises the tree as a dense [BitMatrix], without
// modifying the tree. It walks the set leaf bits directly, recovering
// each one's coordinates via [KTree.CoordsOf], rather than probing every
// cell of the matrix.
func (t *KTree) ToMatrix() (*BitMatrix, error) {
	m := WithDimensions(t.matrixWidth, t.matrixWidth)
	for lb := range t.Leaves() {
		if !lb.Value {
			continue
		}
		if err := m.Set(lb.X, lb.Y, true); err != nil {
			return nil, wrapRead(err)
		}
	}
	return m, nil
}

// IntoMatrix materialises the tree as a dense [BitMatrix]. Unlike
// [KTree.ToMatrix] it documents intent to hand off the tree's contents
// rather than merely inspect them; callers should not rely on t remaining
// usable afterward.
func (t *KTree) IntoMatrix() (*BitMatrix, error) {
	return t.ToMatrix()
}

// FromMatrix builds a tree with the given branching factors that
// represents the same bits as m.
func FromMatrix(m *BitMatrix, stemK, leafK int) (*KTree, error) {
	t, err := WithK(stemK, leafK)
	if err != nil {
		return nil, err
	}

	for t.matrixWidth < m.Width() || t.matrixWidth < m.Height() {
		t.Grow()
	}

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			bit, err := m.Get(x, y)
			if err != nil {
				return nil, wrapWrite(err)
			}
			if bit {
				if err := t.Set(x, y, true); err != nil {
					return nil, err
				}
			}
		}
	}
	return t, nil
}

// SetStemK re-parameterises the tree with a new stem fan-out factor,
// preserving its content. It round-trips through [KTree.ToMatrix] and
// [FromMatrix], so it costs a full materialisation and rebuild.
func (t *KTree) SetStemK(k int) error {
	return t.reparameterize(k, t.leafK)
}

// SetLeafK re-parameterises the tree with a new leaf fan-out factor,
// preserving its content. It round-trips through [KTree.ToMatrix] and
// [FromMatrix], so it costs a full materialisation and rebuild.
func (t *KTree) SetLeafK(k int) error {
	return t.reparameterize(t.stemK, k)
}

func (t *KTree) reparameterize(stemK, leafK int) error {
	m, err := t.ToMatrix()
	if err != nil {
		return err
	}
	rebuilt, err := FromMatrix(m, stemK, leafK)
	if err != nil {
		return wrapWrite(err)
	}
	*t = *rebuilt
	return nil
}
