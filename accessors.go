// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ktree

import "fmt"

func (t *KTree) checkBounds(x, y int) error {
	if x < 0 || x >= t.matrixWidth || y < 0 || y >= t.matrixWidth {
		return fmt.Errorf("%w: (%d,%d) not in [0,%d)", ErrOutOfBounds, x, y, t.matrixWidth)
	}
	return nil
}

// Get reports the bit at (x, y).
func (t *KTree) Get(x, y int) (bool, error) {
	if err := t.checkBounds(x, y); err != nil {
		return false, wrapRead(err)
	}

	res, err := t.descend(x, y)
	if err != nil {
		return false, wrapRead(err)
	}
	if res.outcome == outcomeZeroStem {
		return false, nil
	}

	offset := uint(t.leafK)*uint(y-res.rng.MinY) + uint(x-res.rng.MinX)
	return t.leaves.Test(res.leafStart + offset), nil
}

// GetRow returns the bits of row y, in x order.
func (t *KTree) GetRow(y int) ([]bool, error) {
	if y < 0 || y >= t.matrixWidth {
		return nil, wrapRead(fmt.Errorf("%w: row %d not in [0,%d)", ErrOutOfBounds, y, t.matrixWidth))
	}

	out := make([]bool, 0, t.matrixWidth)
	leafK := t.leafK
	for x := 0; x < t.matrixWidth; x += leafK {
		res, err := t.descend(x, y)
		if err != nil {
			return nil, wrapRead(err)
		}
		if res.outcome == outcomeZeroStem {
			for range leafK {
				out = append(out, false)
			}
			continue
		}
		offset := uint(leafK) * uint(y-res.rng.MinY)
		for i := range leafK {
			out = append(out, t.leaves.Test(res.leafStart+offset+uint(i)))
		}
	}
	return out, nil
}

// GetColumn returns the bits of column x, in y order.
func (t *KTree) GetColumn(x int) ([]bool, error) {
	if x < 0 || x >= t.matrixWidth {
		return nil, wrapRead(fmt.Errorf("%w: column %d not in [0,%d)", ErrOutOfBounds, x, t.matrixWidth))
	}

	out := make([]bool, 0, t.matrixWidth)
	leafK := t.leafK
	for y := 0; y < t.matrixWidth; y += leafK {
		res, err := t.descend(x, y)
		if err != nil {
			return nil, wrapRead(err)
		}
		if res.outcome == outcomeZeroStem {
			for range leafK {
				out = append(out, false)
			}
			continue
		}
		offset := uint(x - res.rng.MinX)
		for i := range leafK {
			out = append(out, t.leaves.Test(res.leafStart+offset+uint(i*leafK)))
		}
	}
	return out, nil
}
