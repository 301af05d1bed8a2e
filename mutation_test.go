// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ktree_test

import (
	"iter"
	"strings"
	"testing"

	"github.com/gaissmai/ktree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bitsToString(bits []bool) string {
	var sb strings.Builder
	for _, b := range bits {
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func rawBits(seq iter.Seq[bool]) []bool {
	var out []bool
	for b := range seq {
		out = append(out, b)
	}
	return out
}

func TestCanonical8x8Scenario(t *testing.T) {
	tr := ktree.New()
	cells := [][2]int{
		{5, 0}, {7, 0}, {4, 1}, {7, 1}, {6, 2}, {7, 2}, {0, 4}, {5, 4}, {4, 5},
	}
	for _, c := range cells {
		require.NoError(t, tr.Set(c[0], c[1], true))
	}

	gotStems := bitsToString(rawBits(tr.StemsRaw()))
	gotLeaves := bitsToString(rawBits(tr.LeavesRaw()))

	// The reference fixture's stems: the first 4 bits are the top stem,
	// the next 12 are the three child stems spawned by its three set
	// bits, each derived independently from the set-cell coordinates.
	assert.Equal(t, "0111"+"1101"+"1000"+"1000", gotStems)
	assert.Equal(t, "0110"+"0101"+"1100"+"1000"+"0110", gotLeaves)
}

func TestSetIsIdempotent(t *testing.T) {
	tr := ktree.New()
	require.NoError(t, tr.Set(3, 5, true))
	before := tr.String()

	require.NoError(t, tr.Set(3, 5, true))
	assert.Equal(t, before, tr.String())
}

func TestSetTrueThenFalseRestoresObservableState(t *testing.T) {
	tr := ktree.New()
	require.NoError(t, tr.Set(1, 1, true))
	before, err := tr.ToMatrix()
	require.NoError(t, err)

	require.NoError(t, tr.Set(3, 5, true))
	require.NoError(t, tr.Set(3, 5, false))

	after, err := tr.ToMatrix()
	require.NoError(t, err)
	assert.Equal(t, before.Bits(), after.Bits())
}

func TestSetFalseOnZeroCellIsNoop(t *testing.T) {
	tr := ktree.New()
	require.NoError(t, tr.Set(2, 2, false))
	assert.True(t, tr.IsEmpty())
}

func TestCascadeRemovalCollapsesToEmptyCanonicalForm(t *testing.T) {
	tr := ktree.New()
	require.NoError(t, tr.Set(0, 0, true))
	require.NoError(t, tr.Set(7, 7, true))

	require.NoError(t, tr.Set(0, 0, false))
	require.NoError(t, tr.Set(7, 7, false))

	assert.True(t, tr.IsEmpty())
	assert.Equal(t, ktree.New().Fingerprint(), tr.Fingerprint())
	assert.True(t, ktree.New().Equal(tr))
}

func TestRowAndColumnMatchGet(t *testing.T) {
	tr := ktree.New()
	require.NoError(t, tr.Set(1, 0, true))
	require.NoError(t, tr.Set(3, 0, true))
	require.NoError(t, tr.Set(6, 0, true))

	row, err := tr.GetRow(0)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, true, false, false, true, false}, row)

	for x := range tr.MatrixWidth() {
		bit, err := tr.Get(x, 0)
		require.NoError(t, err)
		assert.Equal(t, bit, row[x])
	}
}

func TestColumnMatchesGet(t *testing.T) {
	tr := ktree.New()
	require.NoError(t, tr.Set(1, 1, true))
	require.NoError(t, tr.Set(1, 3, true))
	require.NoError(t, tr.Set(1, 6, true))

	col, err := tr.GetColumn(1)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, true, false, false, true, false}, col)

	for y := range tr.MatrixWidth() {
		bit, err := tr.Get(1, y)
		require.NoError(t, err)
		assert.Equal(t, bit, col[y])
	}
}
