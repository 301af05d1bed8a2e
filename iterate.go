// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ktree

import "iter"

// StemBit annotates a single stem-sequence bit with its position in the
// tree's layer/stem/bit-offset hierarchy.
type StemBit struct {
	Layer     int
	StemIndex uint
	BitIndex  uint
	Value     bool
}

// LeafBit annotates a single leaf-sequence bit with the absolute matrix
// coordinates it represents.
type LeafBit struct {
	X, Y      int
	LeafIndex uint
	BitIndex  uint
	Value     bool
}

// Stems returns an iterator over every bit of the tree's stem sequence,
// in storage order, annotated with its layer, stem index within that
// layer, and bit index within its stem.
func (t *KTree) Stems() iter.Seq[StemBit] {
	return func(yield func(StemBit) bool) {
		stemLen := uint(t.stemLen())
		starts := t.layerStarts()
		layer := 0

		for i := uint(0); i < t.stems.Len(); i++ {
			for layer+1 < len(starts) && i >= starts[layer+1] {
				layer++
			}
			stemIndex := (i - starts[layer]) / stemLen
			bit := StemBit{
				Layer:     layer,
				StemIndex: stemIndex,
				BitIndex:  i % stemLen,
				Value:     t.stems.Test(i),
			}
			if !yield(bit) {
				return
			}
		}
	}
}

// StemsRaw returns an iterator over the raw bit values of the tree's stem
// sequence, in storage order.
func (t *KTree) StemsRaw() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for i := uint(0); i < t.stems.Len(); i++ {
			if !yield(t.stems.Test(i)) {
				return
			}
		}
	}
}

// Leaves returns an iterator over every bit of the tree's leaf sequence,
// in storage order, annotated with the absolute matrix coordinates it
// represents.
func (t *KTree) Leaves() iter.Seq[LeafBit] {
	return func(yield func(LeafBit) bool) {
		leafLen := uint(t.leafLen())

		for i := uint(0); i < t.leaves.Len(); i++ {
			x, y, err := t.CoordsOf(i)
			if err != nil {
				return
			}
			bit := LeafBit{
				X:         x,
				Y:         y,
				LeafIndex: i / leafLen,
				BitIndex:  i % leafLen,
				Value:     t.leaves.Test(i),
			}
			if !yield(bit) {
				return
			}
		}
	}
}

// LeavesRaw returns an iterator over the raw bit values of the tree's
// leaf sequence, in storage order.
func (t *KTree) LeavesRaw() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for i := uint(0); i < t.leaves.Len(); i++ {
			if !yield(t.leaves.Test(i)) {
				return
			}
		}
	}
}
