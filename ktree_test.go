// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ktree_test

import (
	"testing"

	"github.com/gaissmai/ktree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	tr := ktree.New()
	assert.Equal(t, 8, tr.MatrixWidth())
	assert.Equal(t, 2, tr.StemK())
	assert.Equal(t, 2, tr.LeafK())
	assert.True(t, tr.IsEmpty())
}

func TestWithKRejectsSmallK(t *testing.T) {
	_, err := ktree.WithK(1, 4)
	require.ErrorIs(t, err, ktree.ErrSmallKValue)

	_, err = ktree.WithK(4, 1)
	require.ErrorIs(t, err, ktree.ErrSmallKValue)
}

func TestSmokeScenario(t *testing.T) {
	tr := ktree.New()
	require.NoError(t, tr.Set(0, 4, true))
	require.NoError(t, tr.Set(6, 5, true))
	require.NoError(t, tr.Set(0, 4, false))

	got, err := tr.Get(0, 4)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = tr.Get(6, 5)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = tr.Get(0, 0)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestOutOfBoundsFails(t *testing.T) {
	tr := ktree.New()

	_, err := tr.Get(tr.MatrixWidth(), 0)
	require.ErrorIs(t, err, ktree.ErrOutOfBounds)

	err = tr.Set(0, tr.MatrixWidth(), true)
	require.ErrorIs(t, err, ktree.ErrOutOfBounds)
}

func TestGrowShrinkIdentityScenario(t *testing.T) {
	tr := ktree.New()
	tr.Grow()
	require.Equal(t, 16, tr.MatrixWidth())

	require.NoError(t, tr.Shrink())
	assert.Equal(t, 8, tr.MatrixWidth())

	err := tr.Shrink()
	require.ErrorIs(t, err, ktree.ErrCouldNotShrinkAlreadyMinimum)
}

// referenceMatrix is a plain dense bool matrix used as an oracle against
// which KTree behaviour is checked (property I1).
type referenceMatrix struct {
	width int
	bits  []bool
}

func newReferenceMatrix(width int) *referenceMatrix {
	return &referenceMatrix{width: width, bits: make([]bool, width*width)}
}

func (m *referenceMatrix) set(x, y int, v bool) { m.bits[y*m.width+x] = v }
func (m *referenceMatrix) get(x, y int) bool    { return m.bits[y*m.width+x] }

func TestGetMatchesReferenceMatrix(t *testing.T) {
	tr := ktree.New()
	ref := newReferenceMatrix(tr.MatrixWidth())

	coords := [][2]int{{0, 4}, {6, 5}, {0, 0}, {7, 7}, {3, 2}}
	for _, c := range coords {
		require.NoError(t, tr.Set(c[0], c[1], true))
		ref.set(c[0], c[1], true)
	}

	for x := range tr.MatrixWidth() {
		for y := range tr.MatrixWidth() {
			got, err := tr.Get(x, y)
			require.NoError(t, err)
			assert.Equal(t, ref.get(x, y), got, "mismatch at (%d,%d)", x, y)
		}
	}
}

func TestStringAndMarshalText(t *testing.T) {
	tr := ktree.New()
	require.NoError(t, tr.Set(0, 0, true))

	s := tr.String()
	assert.NotEmpty(t, s)

	b, err := tr.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, s, string(b))
}

func TestEmptyTreeString(t *testing.T) {
	tr := ktree.New()
	assert.Equal(t, "[0000]", tr.String())
}
