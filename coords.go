// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ktree

import (
	"fmt"

	"github.com/gaissmai/ktree/internal/geom"
)

// CoordsOf recovers the matrix coordinates of a set bit at leafBitPos
// within the leaves sequence. It walks from the leaf's stem parent up to
// the root, recording the child offset selected at each stem layer, then
// replays those offsets from the whole-matrix range downward to locate
// the leaf's sub-square.
func (t *KTree) CoordsOf(leafBitPos uint) (x, y int, err error) {
	if leafBitPos >= t.leaves.Len() {
		return 0, 0, fmt.Errorf("%w: leaf bit %d out of range", ErrTraverse, leafBitPos)
	}

	stemBitPos, err := t.leafParent(leafBitPos)
	if err != nil {
		return 0, 0, err
	}

	stemLen := uint(t.stemLen())
	offsets := []uint{stemBitPos % stemLen}

	stemStart := t.stemStart(stemBitPos)
	for stemStart >= stemLen {
		parentStemStart, bitOffset, perr := t.parent(stemStart)
		if perr != nil {
			return 0, 0, perr
		}
		offsets = append(offsets, bitOffset)
		stemStart = parentStemStart
	}

	for i, j := 0, len(offsets)-1; i < j; i, j = i+1, j-1 {
		offsets[i], offsets[j] = offsets[j], offsets[i]
	}

	rng := geom.Range2D{MinX: 0, MaxX: t.matrixWidth - 1, MinY: 0, MaxY: t.matrixWidth - 1}
	for _, off := range offsets {
		subs, serr := geom.SubRanges(rng, t.stemK, t.stemK)
		if serr != nil {
			return 0, 0, fmt.Errorf("%w: %w", ErrCannotSubdivideRange, serr)
		}
		if off >= uint(len(subs)) {
			return 0, 0, fmt.Errorf("%w: child offset %d out of range", ErrTraverse, off)
		}
		rng = subs[off]
	}

	within := leafBitPos % uint(t.leafLen())
	x = rng.MinX + int(within)%t.leafK
	y = rng.MinY + int(within)/t.leafK
	return x, y, nil
}
