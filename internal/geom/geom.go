// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package geom implements the inclusive rectangular coordinate ranges a
// K²-tree descends through, and their even subdivision into the stem's
// fan-out grid.
package geom

import (
	"errors"
	"fmt"
)

// Range2D is an inclusive axis-aligned rectangle over matrix coordinates.
type Range2D struct {
	MinX, MaxX, MinY, MaxY int
}

// Width returns the number of columns the range spans.
func (r Range2D) Width() int { return r.MaxX - r.MinX + 1 }

// Height returns the number of rows the range spans.
func (r Range2D) Height() int { return r.MaxY - r.MinY + 1 }

// Contains reports whether (x, y) falls inside the range.
func (r Range2D) Contains(x, y int) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// ErrCannotSubdivide is returned when a range's dimensions are not evenly
// divisible by the requested subdivision grid.
var ErrCannotSubdivide = errors.New("geom: cannot subdivide range")

// SubRanges subdivides r into a w×h grid of equal-sized sub-rectangles,
// ordered row-major (rows outer, columns inner). r.Width() must be a
// multiple of w and r.Height() a multiple of h.
func SubRanges(r Range2D, w, h int) ([]Range2D, error) {
	if w <= 0 || h <= 0 || r.Width()%w != 0 || r.Height()%h != 0 {
		return nil, fmt.Errorf("%w: range=%v w=%d h=%d", ErrCannotSubdivide, r, w, h)
	}

	subW := r.Width() / w
	subH := r.Height() / h

	subs := make([]Range2D, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			minX := r.MinX + x*subW
			minY := r.MinY + y*subH
			subs = append(subs, Range2D{
				MinX: minX,
				MaxX: minX + subW - 1,
				MinY: minY,
				MaxY: minY + subH - 1,
			})
		}
	}
	return subs, nil
}
