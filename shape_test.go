// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ktree_test

import (
	"math/rand/v2"
	"testing"

	"github.com/gaissmai/ktree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test27x27Scenario(t *testing.T) {
	cells := [][2]int{
		{10, 0}, {12, 0}, {9, 1}, {12, 1}, {11, 2}, {12, 2},
		{0, 9}, {10, 9}, {9, 10},
		{0, 18}, {10, 18}, {9, 19},
	}

	m := ktree.WithDimensions(27, 27)
	for _, c := range cells {
		require.NoError(t, m.Set(c[0], c[1], true))
	}

	tr, err := ktree.FromMatrix(m, 3, 3)
	require.NoError(t, err)
	require.Equal(t, 27, tr.MatrixWidth())

	got, err := tr.ToMatrix()
	require.NoError(t, err)
	assert.Equal(t, m.Bits(), got.Bits())
}

func TestFloodScenario(t *testing.T) {
	tr, err := ktree.WithK(2, 2)
	require.NoError(t, err)
	for tr.MatrixWidth() < 8*1024 {
		tr.Grow()
	}
	require.Equal(t, 8*1024, tr.MatrixWidth())

	ref := newReferenceMatrix(tr.MatrixWidth())
	prng := rand.New(rand.NewPCG(1, 1))

	for range 500 {
		x := prng.IntN(tr.MatrixWidth())
		y := prng.IntN(tr.MatrixWidth())
		require.NoError(t, tr.Set(x, y, true))
		ref.set(x, y, true)
	}

	for _, c := range [][2]int{{0, 0}, {1, 1}, {tr.MatrixWidth() - 1, tr.MatrixWidth() - 1}} {
		got, err := tr.Get(c[0], c[1])
		require.NoError(t, err)
		assert.Equal(t, ref.get(c[0], c[1]), got)
	}
}

func TestReparameteriseScenario(t *testing.T) {
	m := ktree.WithDimensions(8, 8)
	require.NoError(t, m.Set(1, 0, true))
	require.NoError(t, m.Set(5, 6, true))

	tr, err := ktree.FromMatrix(m, 2, 2)
	require.NoError(t, err)

	require.NoError(t, tr.SetStemK(3))
	assert.Equal(t, 3, tr.StemK())

	got, err := tr.ToMatrix()
	require.NoError(t, err)
	// With stemK=3, leafK=2 the smallest width holding 8 is 2·3² = 18; the
	// original content sits in the top-left corner, zero-padded.
	require.Equal(t, 18, got.Width())
	m.ResizeWidth(got.Width())
	m.ResizeHeight(got.Height())
	assert.Equal(t, m.Bits(), got.Bits())
}

func TestRoundTripFromMatrixToMatrix(t *testing.T) {
	m := ktree.WithDimensions(16, 16)
	prng := rand.New(rand.NewPCG(7, 7))
	for range 30 {
		x, y := prng.IntN(16), prng.IntN(16)
		require.NoError(t, m.Set(x, y, true))
	}

	tr, err := ktree.FromMatrix(m, 2, 2)
	require.NoError(t, err)

	got, err := tr.ToMatrix()
	require.NoError(t, err)
	assert.Equal(t, m.Bits(), got.Bits())
}

func TestGrowShrinkPreservesContent(t *testing.T) {
	tr := ktree.New()
	require.NoError(t, tr.Set(3, 3, true))
	before := tr.Fingerprint()

	tr.Grow()
	require.NoError(t, tr.Shrink())
	assert.Equal(t, before, tr.Fingerprint())
}

func TestShrinkFailsWhenInformationWouldBeLost(t *testing.T) {
	tr := ktree.New()
	tr.Grow()
	// Set a bit that, after growing, lives outside the would-be-shrunk
	// top-left region, so collapsing the new top layer away would lose it.
	require.NoError(t, tr.Set(15, 15, true))

	err := tr.Shrink()
	require.ErrorIs(t, err, ktree.ErrCouldNotShrinkWouldLoseInformation)
}

func TestBitMatrixResize(t *testing.T) {
	m := ktree.WithDimensions(2, 2)
	require.NoError(t, m.Set(1, 1, true))

	m.ResizeWidth(4)
	assert.Equal(t, 4, m.Width())
	bit, err := m.Get(1, 1)
	require.NoError(t, err)
	assert.True(t, bit)

	m.ResizeHeight(1)
	assert.Equal(t, 1, m.Height())

	m.ShrinkToFit()
	assert.Equal(t, 4, m.Width())
}
