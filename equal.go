// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ktree

import "hash/fnv"

// Equal reports whether t and o represent the same bit matrix with the
// same branching factors and the same internal encoding. Two trees built
// by different sequences of Set calls that end up structurally identical
// compare equal.
func (t *KTree) Equal(o *KTree) bool {
	if t == o {
		return true
	}
	if o == nil {
		return false
	}
	return t.stemK == o.stemK &&
		t.leafK == o.leafK &&
		t.maxSLayers == o.maxSLayers &&
		t.matrixWidth == o.matrixWidth &&
		t.stems.Equal(o.stems) &&
		t.leaves.Equal(o.leaves)
}

// Fingerprint returns a content hash of t, suitable for use as a map key
// or for cheaply detecting that two trees very likely differ. Trees that
// compare Equal always return the same Fingerprint; the converse is not
// guaranteed.
func (t *KTree) Fingerprint() uint64 {
	h := fnv.New64a()
	var scratch [8]byte

	writeInt := func(n int) {
		for i := range scratch {
			scratch[i] = byte(n >> (8 * i))
		}
		h.Write(scratch[:])
	}
	writeInt(t.stemK)
	writeInt(t.leafK)
	writeInt(t.maxSLayers)
	writeInt(t.matrixWidth)

	writeBools := func(bs []bool) {
		var b byte
		for i, v := range bs {
			if v {
				b |= 1 << uint(i%8)
			}
			if i%8 == 7 {
				h.Write([]byte{b})
				b = 0
			}
		}
		h.Write([]byte{b})
	}
	writeBools(t.stems.Bools())
	writeBools(t.leaves.Bools())

	return h.Sum64()
}
