// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ktree

import (
	"fmt"

	"github.com/gaissmai/ktree/internal/geom"
)

// descentOutcome distinguishes the two ways a descent toward (x, y) can
// end: it either reaches a materialised leaf, or it runs into a stem bit
// that is unset, meaning the whole sub-square it covers is implicitly 0.
type descentOutcome int

const (
	outcomeZeroStem descentOutcome = iota
	outcomeLeaf
)

// descentResult records everything the mutation engine needs to act on a
// descend() call, without re-walking the tree.
type descentResult struct {
	outcome descentOutcome

	layer     int           // stem layer at which the descent stopped
	stemStart uint          // start of the stem holding the decisive bit
	childPos  uint          // offset of that bit within the stem
	leafStart uint          // valid only when outcome == outcomeLeaf
	rng       geom.Range2D  // sub-square the decisive bit covers
}

// bitPos is the absolute position, within stems, of the decisive bit.
func (d descentResult) bitPos() uint { return d.stemStart + d.childPos }

// descend walks from the top stem down toward (x, y), stopping either at
// the leaf that would hold it or at the first unset stem bit covering it.
func (t *KTree) descend(x, y int) (descentResult, error) {
	rng := geom.Range2D{MinX: 0, MaxX: t.matrixWidth - 1, MinY: 0, MaxY: t.matrixWidth - 1}

	layer := 0
	stemStart := uint(0)

	for {
		subs, err := geom.SubRanges(rng, t.stemK, t.stemK)
		if err != nil {
			return descentResult{}, fmt.Errorf("%w: %w", ErrCannotSubdivideRange, err)
		}

		childPos := -1
		for i, sub := range subs {
			if sub.Contains(x, y) {
				childPos = i
				break
			}
		}
		if childPos < 0 {
			return descentResult{}, fmt.Errorf("%w: (%d,%d) not covered by any child range", ErrTraverse, x, y)
		}

		bitPos := stemStart + uint(childPos)
		if !t.stems.Test(bitPos) {
			return descentResult{
				outcome:   outcomeZeroStem,
				layer:     layer,
				stemStart: stemStart,
				childPos:  uint(childPos),
				rng:       subs[childPos],
			}, nil
		}

		if layer == t.maxSLayers-1 {
			leafStart, err := t.stemToLeafStart(bitPos)
			if err != nil {
				return descentResult{}, err
			}
			return descentResult{
				outcome:   outcomeLeaf,
				layer:     layer,
				stemStart: stemStart,
				childPos:  uint(childPos),
				leafStart: leafStart,
				rng:       subs[childPos],
			}, nil
		}

		childStemStart, err := t.childStem(layer, stemStart, uint(childPos))
		if err != nil {
			return descentResult{}, err
		}
		stemStart = childStemStart
		layer++
		rng = subs[childPos]
	}
}
