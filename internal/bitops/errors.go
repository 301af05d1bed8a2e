// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bitops

import "errors"

// ErrBlockAlignment is returned by InsertBlock and RemoveBlock when pos is
// not aligned to the block length, or the block does not fit the sequence.
var ErrBlockAlignment = errors.New("bitops: misaligned or out-of-range block")
