// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bitops implements the fixed-length bit-block primitives a K²-tree
// is built from: aligned block insertion and removal in a growing bit
// sequence, and range popcount/all-zero/ones-position queries over it.
//
// Sequence wraps [github.com/bits-and-blooms/bitset.BitSet], the real
// upstream of the stripped-down reimplementation the teacher package
// carries in its own internal/bitset, adding the explicit logical length
// the upstream type doesn't track on its own (its capacity grows in whole
// words, not bits). Range queries (Popcount, AllZero, OnesPositions) are
// built on BitSet's own Rank and NextSet, which do their work a word at a
// time (Rank via [math/bits.OnesCount64] over whole words plus a masked
// boundary word, NextSet via [math/bits.TrailingZeros64] to skip zero
// words outright) the same way the teacher's own internal/bitset.Rank0
// does; none of these range queries re-walks a range one bit at a time.
package bitops

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Sequence is an ordered, length-tracked sequence of bits backed by a
// [bitset.BitSet]. The zero value is not usable; construct with
// [NewSequence] or [FromBools].
type Sequence struct {
	bits *bitset.BitSet
	len  uint
}

// NewSequence returns an empty Sequence.
func NewSequence() *Sequence {
	return &Sequence{bits: bitset.New(0)}
}

// Len returns the number of bits currently held in the sequence.
func (s *Sequence) Len() uint {
	return s.len
}

// Test reports the value of the bit at i. It panics if i >= s.Len().
func (s *Sequence) Test(i uint) bool {
	if i >= s.len {
		panic(fmt.Sprintf("bitops: Test index %d out of range (len %d)", i, s.len))
	}
	return s.bits.Test(i)
}

// SetTo sets the bit at i to v. It panics if i >= s.Len().
func (s *Sequence) SetTo(i uint, v bool) {
	if i >= s.len {
		panic(fmt.Sprintf("bitops: SetTo index %d out of range (len %d)", i, s.len))
	}
	if v {
		s.bits.Set(i)
	} else {
		s.bits.Clear(i)
	}
}

// InsertBlock inserts len false bits at pos, shifting every bit at or after
// pos right by len. pos must be a multiple of len and at most s.Len(), or
// an error is returned and the sequence is left unchanged.
func (s *Sequence) InsertBlock(pos, blockLen uint) error {
	if blockLen == 0 || pos > s.len || pos%blockLen != 0 {
		return fmt.Errorf("%w: pos=%d len=%d (sequence len %d)", ErrBlockAlignment, pos, blockLen, s.len)
	}

	// Shift the tail [pos, s.len) right by blockLen, working from the top
	// down so earlier writes never clobber bits still to be read.
	for i := s.len; i > pos; i-- {
		src := i - 1
		dst := src + blockLen
		if s.bits.Test(src) {
			s.bits.Set(dst)
		} else {
			s.bits.Clear(dst)
		}
	}
	for i := pos; i < pos+blockLen; i++ {
		s.bits.Clear(i)
	}
	s.len += blockLen
	return nil
}

// RemoveBlock removes the blockLen bits starting at pos, shifting every bit
// after the removed block left by blockLen. pos must be a multiple of
// blockLen and pos+blockLen must not exceed s.Len(), or an error is
// returned and the sequence is left unchanged.
func (s *Sequence) RemoveBlock(pos, blockLen uint) error {
	if blockLen == 0 || pos+blockLen > s.len || pos%blockLen != 0 {
		return fmt.Errorf("%w: pos=%d len=%d (sequence len %d)", ErrBlockAlignment, pos, blockLen, s.len)
	}

	for i := pos + blockLen; i < s.len; i++ {
		dst := i - blockLen
		if s.bits.Test(i) {
			s.bits.Set(dst)
		} else {
			s.bits.Clear(dst)
		}
	}
	for i := s.len - blockLen; i < s.len; i++ {
		s.bits.Clear(i)
	}
	s.len -= blockLen
	return nil
}

// Popcount returns the number of set bits in the half-open range [lo, hi),
// via two calls to [bitset.BitSet.Rank] rather than testing every bit.
func (s *Sequence) Popcount(lo, hi uint) uint {
	if hi <= lo {
		return 0
	}
	total := s.bits.Rank(hi - 1)
	if lo == 0 {
		return total
	}
	return total - s.bits.Rank(lo-1)
}

// AllZero reports whether no bit in [lo, hi) is set. It stops at the
// first set bit found at or after lo via [bitset.BitSet.NextSet], rather
// than scanning the whole range.
func (s *Sequence) AllZero(lo, hi uint) bool {
	if hi <= lo {
		return true
	}
	pos, ok := s.bits.NextSet(lo)
	return !ok || pos >= hi
}

// OnesPositions returns, in ascending order, the offsets from lo of every
// set bit in [lo, hi). It walks only the set bits, via repeated
// [bitset.BitSet.NextSet] calls, skipping whole zero words instead of
// testing every bit in the range.
func (s *Sequence) OnesPositions(lo, hi uint) []uint {
	var out []uint
	for i := lo; i < hi; {
		pos, ok := s.bits.NextSet(i)
		if !ok || pos >= hi {
			break
		}
		out = append(out, pos-lo)
		i = pos + 1
	}
	return out
}

// AppendZeros grows the sequence by n false bits at the tail.
func (s *Sequence) AppendZeros(n uint) {
	if n == 0 {
		return
	}
	end := s.len + n
	for i := s.len; i < end; i++ {
		s.bits.Clear(i)
	}
	s.len = end
}

// Clone returns an independent copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	return &Sequence{bits: s.bits.Clone(), len: s.len}
}

// Equal reports whether two sequences have the same length and the same
// bits set.
func (s *Sequence) Equal(o *Sequence) bool {
	if s.len != o.len {
		return false
	}
	for i := uint(0); i < s.len; i++ {
		if s.bits.Test(i) != o.bits.Test(i) {
			return false
		}
	}
	return true
}

// Bools materializes the sequence as a []bool, mostly useful in tests.
func (s *Sequence) Bools() []bool {
	out := make([]bool, s.len)
	for i := uint(0); i < s.len; i++ {
		out[i] = s.bits.Test(i)
	}
	return out
}

// FromBools builds a Sequence from a []bool.
func FromBools(bits []bool) *Sequence {
	s := &Sequence{bits: bitset.New(uint(len(bits))), len: uint(len(bits))}
	for i, b := range bits {
		if b {
			s.bits.Set(uint(i))
		}
	}
	return s
}
