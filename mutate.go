// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ktree

import (
	"fmt"

	"github.com/gaissmai/ktree/internal/geom"
)

// Set writes state at (x, y), growing or pruning the tree's internal
// stems/leaves as needed. A write of false into an already-zero cell, or
// of true into an already-one cell, is a no-op.
func (t *KTree) Set(x, y int, state bool) error {
	if err := t.checkBounds(x, y); err != nil {
		return wrapWrite(err)
	}

	res, err := t.descend(x, y)
	if err != nil {
		return wrapWrite(err)
	}

	switch {
	case res.outcome == outcomeLeaf:
		return t.setInLeaf(x, y, res, state)
	case state:
		return t.materialize(x, y, res)
	default:
		// Writing false into a cell that is already implicitly 0: no-op.
		return nil
	}
}

func (t *KTree) setInLeaf(x, y int, res descentResult, state bool) error {
	offset := uint(t.leafK)*uint(y-res.rng.MinY) + uint(x-res.rng.MinX)
	bitIdx := res.leafStart + offset

	if t.leaves.Test(bitIdx) == state {
		return nil
	}
	t.leaves.SetTo(bitIdx, state)

	if state {
		return nil
	}

	leafLen := uint(t.leafLen())
	if !t.leaves.AllZero(res.leafStart, res.leafStart+leafLen) {
		return nil
	}
	return t.removeDeadLeaf(res.leafStart)
}

// removeDeadLeaf removes a leaf block that has gone all-zero, then walks
// up the stems cascading the removal through every ancestor stem that, as
// a result, also goes all-zero.
func (t *KTree) removeDeadLeaf(leafStart uint) error {
	parentBitPos, err := t.leafParent(leafStart)
	if err != nil {
		return wrapCorrupted(fmt.Errorf("%w: %v", ErrLeafRemoval, err))
	}

	leafLen := uint(t.leafLen())
	if err := t.leaves.RemoveBlock(leafStart, leafLen); err != nil {
		return wrapCorrupted(fmt.Errorf("%w: %v", ErrLeafRemoval, err))
	}

	if t.leaves.Len() == 0 {
		// No leaves left at all: reset to the canonical empty encoding
		// directly instead of cascading one stem at a time.
		t.stems = newZeroedStemSequence(uint(t.stemLen()))
		return nil
	}

	t.stems.SetTo(parentBitPos, false)

	stemLen := uint(t.stemLen())
	curLayer := t.maxSLayers - 1
	stemStart := t.stemStart(parentBitPos)

	for curLayer > 0 && t.stems.AllZero(stemStart, stemStart+stemLen) {
		parentStemStart, bitOffset, err := t.parent(stemStart)
		if err != nil {
			return wrapCorrupted(fmt.Errorf("%w: %v", ErrStemRemoval, err))
		}
		if err := t.stems.RemoveBlock(stemStart, stemLen); err != nil {
			return wrapCorrupted(fmt.Errorf("%w: %v", ErrStemRemoval, err))
		}
		t.stems.SetTo(parentStemStart+bitOffset, false)

		curLayer--
		stemStart = parentStemStart
	}
	return nil
}

// materialize grows the tree downward from a zero stem bit found by
// descend, creating intermediate stems as needed, then creates the leaf
// holding (x, y) and sets its bit.
func (t *KTree) materialize(x, y int, res descentResult) error {
	layer := res.layer
	stemStart := res.stemStart
	childPos := res.childPos
	rng := res.rng

	t.stems.SetTo(stemStart+childPos, true)

	stemLen := uint(t.stemLen())
	for layer < t.maxSLayers-1 {
		starts := t.layerStarts()
		rank := t.stems.Popcount(starts[layer], stemStart+childPos)
		childBase := t.stems.Len()
		if layer+1 < len(starts) {
			childBase = starts[layer+1]
		}
		childStemStart := childBase + rank*stemLen

		if err := t.stems.InsertBlock(childStemStart, stemLen); err != nil {
			return wrapCorrupted(fmt.Errorf("%w: %v", ErrStemInsertion, err))
		}

		subs, err := geom.SubRanges(rng, t.stemK, t.stemK)
		if err != nil {
			return wrapCorrupted(fmt.Errorf("%w: %w", ErrCannotSubdivideRange, err))
		}
		nextChildPos := -1
		for i, sub := range subs {
			if sub.Contains(x, y) {
				nextChildPos = i
				break
			}
		}
		if nextChildPos < 0 {
			return wrapCorrupted(fmt.Errorf("%w: (%d,%d) uncovered while growing stems", ErrTraverse, x, y))
		}

		layer++
		stemStart = childStemStart
		childPos = uint(nextChildPos)
		rng = subs[nextChildPos]
		t.stems.SetTo(stemStart+childPos, true)
	}

	starts := t.layerStarts()
	finalStart := starts[len(starts)-1]
	rank := t.stems.Popcount(finalStart, stemStart+childPos)
	leafLen := uint(t.leafLen())
	leafStart := rank * leafLen

	if err := t.leaves.InsertBlock(leafStart, leafLen); err != nil {
		return wrapCorrupted(fmt.Errorf("%w: %v", ErrLeafInsertion, err))
	}
	offset := uint(t.leafK)*uint(y-rng.MinY) + uint(x-rng.MinX)
	t.leaves.SetTo(leafStart+offset, true)
	return nil
}
