// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ktree

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gaissmai/ktree/internal/bitops"
)

// MarshalText implements [encoding.TextMarshaler], wrapping [KTree.Fprint].
func (t *KTree) MarshalText() ([]byte, error) {
	w := new(strings.Builder)
	if err := t.Fprint(w); err != nil {
		return nil, err
	}
	return []byte(w.String()), nil
}

// String returns the tree's stems and leaves as comma-grouped, "::"
// separated runs of '0'/'1' characters, one group per layer. If Fprint
// returns an error, String panics.
func (t *KTree) String() string {
	w := new(strings.Builder)
	if err := t.Fprint(w); err != nil {
		panic(err)
	}
	return w.String()
}

// Fprint writes the tree's layered bit layout to w. If w is nil, Fprint
// returns an error.
func (t *KTree) Fprint(w io.Writer) error {
	if w == nil {
		return errors.New("ktree: Fprint: nil writer")
	}

	if t.leaves.Len() == 0 {
		_, err := fmt.Fprintf(w, "[%s]", strings.Repeat("0", t.stemLen()))
		return err
	}

	var sb strings.Builder
	starts := t.layerStarts()
	stemLen := uint(t.stemLen())
	for l := range starts {
		layerEnd := t.stems.Len()
		if l+1 < len(starts) {
			layerEnd = starts[l+1]
		}
		writeGroups(&sb, t.stems, starts[l], layerEnd, stemLen)
		sb.WriteString("::")
	}
	writeGroups(&sb, t.leaves, 0, t.leaves.Len(), uint(t.leafLen()))

	_, err := io.WriteString(w, sb.String())
	return err
}

// writeGroups writes seq[lo:hi] as '0'/'1' characters, comma-separating
// every groupSize-th run.
func writeGroups(sb *strings.Builder, seq *bitops.Sequence, lo, hi, groupSize uint) {
	count := uint(0)
	for i := lo; i < hi; i++ {
		if seq.Test(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
		count++
		if count == groupSize {
			if i+1 < hi {
				sb.WriteByte(',')
			}
			count = 0
		}
	}
}
