// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ktree

import (
	"fmt"

	"github.com/gaissmai/ktree/internal/bitops"
)

// KTree represents a square bit matrix of side MatrixWidth(), stored as a
// compressed hierarchical succinct encoding rather than a dense array. The
// zero value is not usable; construct with [New] or [WithK].
//
// KTree exclusively owns its two bit sequences; it is safe to move between
// goroutines but, like a plain map, is not safe for concurrent readers and
// writers without external synchronization.
type KTree struct {
	stemK, leafK int
	maxSLayers   int
	matrixWidth  int

	stems  *bitops.Sequence
	leaves *bitops.Sequence
}

// New returns an empty KTree representing an 8×8 bit matrix, with
// stemK = leafK = 2.
func New() *KTree {
	t, err := WithK(2, 2)
	if err != nil {
		// stemK=leafK=2 always satisfies WithK's precondition.
		panic(fmt.Sprintf("ktree: New: unreachable: %v", err))
	}
	return t
}

// WithK returns an empty KTree with the given branching factors. Both
// stemK and leafK must be at least 2.
func WithK(stemK, leafK int) (*KTree, error) {
	if stemK < 2 {
		return nil, fmt.Errorf("%w: stem_k=%d", ErrSmallKValue, stemK)
	}
	if leafK < 2 {
		return nil, fmt.Errorf("%w: leaf_k=%d", ErrSmallKValue, leafK)
	}

	const initialSLayers = 2
	t := &KTree{
		stemK:       stemK,
		leafK:       leafK,
		maxSLayers:  initialSLayers,
		matrixWidth: leafK * intPow(stemK, initialSLayers),
		stems:       bitops.NewSequence(),
		leaves:      bitops.NewSequence(),
	}
	t.stems.AppendZeros(uint(t.stemLen()))
	return t, nil
}

// MatrixWidth returns the side length of the bit matrix the tree represents.
func (t *KTree) MatrixWidth() int { return t.matrixWidth }

// StemK returns the stem fan-out factor.
func (t *KTree) StemK() int { return t.stemK }

// LeafK returns the leaf fan-out factor.
func (t *KTree) LeafK() int { return t.leafK }

// IsEmpty reports whether the tree contains no set bits.
func (t *KTree) IsEmpty() bool {
	return t.leaves.Len() == 0
}

func (t *KTree) stemLen() int { return t.stemK * t.stemK }
func (t *KTree) leafLen() int { return t.leafK * t.leafK }

func newZeroedStemSequence(n uint) *bitops.Sequence {
	s := bitops.NewSequence()
	s.AppendZeros(n)
	return s
}

func intPow(base, exp int) int {
	r := 1
	for range exp {
		r *= base
	}
	return r
}

// layerStarts returns the absolute start offset, within stems, of every
// stem layer materialised so far. There is always at least one entry
// (layer 0 starts at 0); entries for layers not yet materialised (because
// the tree, or that part of it, is still empty) are simply absent.
func (t *KTree) layerStarts() []uint {
	stemLen := uint(t.stemLen())
	starts := []uint{0}

	total := t.stems.Len()
	if total <= stemLen {
		return starts
	}
	starts = append(starts, stemLen)

	for starts[len(starts)-1] < total {
		last := len(starts) - 1
		prevStart, curStart := starts[last-1], starts[last]
		cnt := t.stems.Popcount(prevStart, curStart)
		if cnt == 0 {
			break
		}
		next := curStart + cnt*stemLen
		if next >= total {
			break
		}
		starts = append(starts, next)
	}
	return starts
}

// layerLen returns the number of bits occupied by stem layer l.
func (t *KTree) layerLen(l int, starts []uint) uint {
	if l+1 < len(starts) {
		return starts[l+1] - starts[l]
	}
	return t.stems.Len() - starts[l]
}

func (t *KTree) stemStart(bitPos uint) uint {
	stemLen := uint(t.stemLen())
	return (bitPos / stemLen) * stemLen
}

func (t *KTree) leafStart(bitPos uint) uint {
	leafLen := uint(t.leafLen())
	return (bitPos / leafLen) * leafLen
}

// layerOf returns the index of the stem layer containing stemStart, given
// the current layerStarts().
func (t *KTree) layerOf(stemStart uint, starts []uint) int {
	for l := len(starts) - 1; l >= 0; l-- {
		if stemStart >= starts[l] {
			return l
		}
	}
	return 0
}

// parent returns the parent stem's start offset and the bit offset of the
// parent bit within that stem, for the stem starting at stemStart. It
// fails if stemStart is the top stem (layer 0), which has no parent.
func (t *KTree) parent(stemStart uint) (parentStemStart, bitOffset uint, err error) {
	stemLen := uint(t.stemLen())
	if stemStart < stemLen {
		return 0, 0, fmt.Errorf("%w: top stem has no parent", ErrTraverse)
	}

	starts := t.layerStarts()
	layer := t.layerOf(stemStart, starts)

	nthStem := (stemStart - starts[layer]) / stemLen
	parentLayerStart, parentLayerEnd := starts[layer-1], starts[layer]

	ones := t.stems.OnesPositions(parentLayerStart, parentLayerEnd)
	if nthStem >= uint(len(ones)) {
		return 0, 0, fmt.Errorf("%w: stem %d has no parent bit in layer %d", ErrTraverse, stemStart, layer-1)
	}

	p := parentLayerStart + ones[nthStem]
	return t.stemStart(p), p % stemLen, nil
}

// stemToLeafStart maps the position of a set bit in the final stem layer
// to the start offset of the leaf it points to.
func (t *KTree) stemToLeafStart(stemBitPos uint) (uint, error) {
	if !t.stems.Test(stemBitPos) {
		return 0, fmt.Errorf("%w: stem bit %d is not set", ErrTraverse, stemBitPos)
	}

	starts := t.layerStarts()
	finalStart := starts[len(starts)-1]
	if stemBitPos < finalStart {
		return 0, fmt.Errorf("%w: stem bit %d is not in the final stem layer", ErrTraverse, stemBitPos)
	}

	rank := t.stems.Popcount(finalStart, stemBitPos)
	return rank * uint(t.leafLen()), nil
}

// childStem returns the start offset of the child stem reached from
// stemStart's bit nthChild, on stem layer l. It fails if that bit is
// unset or l is the final stem layer.
func (t *KTree) childStem(l int, stemStart, nthChild uint) (uint, error) {
	starts := t.layerStarts()
	if l >= t.maxSLayers-1 {
		return 0, fmt.Errorf("%w: layer %d has no children", ErrTraverse, l)
	}
	bitPos := stemStart + nthChild
	if !t.stems.Test(bitPos) {
		return 0, fmt.Errorf("%w: stem bit %d is not set", ErrTraverse, bitPos)
	}

	stemLen := uint(t.stemLen())
	rank := t.stems.Popcount(starts[l], bitPos)
	return starts[l+1] + rank*stemLen, nil
}

// leafParent returns the absolute position, within stems, of the final
// stem-layer bit that points to the leaf whose bit leafBitPos falls in.
func (t *KTree) leafParent(leafBitPos uint) (uint, error) {
	nthLeaf := leafBitPos / uint(t.leafLen())

	starts := t.layerStarts()
	finalStart := starts[len(starts)-1]
	ones := t.stems.OnesPositions(finalStart, t.stems.Len())
	if nthLeaf >= uint(len(ones)) {
		return 0, fmt.Errorf("%w: no stem parent for leaf bit %d", ErrTraverse, leafBitPos)
	}
	return finalStart + ones[nthLeaf], nil
}
