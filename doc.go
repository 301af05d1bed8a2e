// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package ktree provides a K²-tree: a compressed, in-memory representation
// of a sparse, square bit matrix.
//
// A KTree behaves as if it were a dense W×W bit matrix — point read, point
// write, row/column extraction, grow/shrink, iteration, materialisation —
// while physically storing only the non-empty regions of the matrix in a
// hierarchical, pointer-free succinct encoding. Typical uses are graph
// adjacency matrices and triple-store indices where density is well below
// one percent.
//
// The tree is built from two concatenated bit sequences, stems and leaves,
// navigated by rank (popcount prefix) rather than stored pointers. Two
// branching factors, stemK and leafK, are fixed for the lifetime of a tree
// and govern the fan-out of every stem layer and of the final leaf level
// respectively.
//
// KTree is not safe for concurrent readers and writers; concurrent readers
// alone are fine. A KTree is safe to move between goroutines.
package ktree
