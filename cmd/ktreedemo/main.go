// Command ktreedemo builds a random sparse KTree, logs its dimensions,
// and exercises grow/shrink and materialisation into a dense matrix.
package main

import (
	"flag"
	"log"
	"math/rand/v2"
	"time"

	"github.com/gaissmai/ktree"
)

func main() {
	var (
		stemK   = flag.Int("stem-k", 2, "stem fan-out factor")
		leafK   = flag.Int("leaf-k", 2, "leaf fan-out factor")
		grows   = flag.Int("grows", 2, "number of times to grow the matrix before filling it")
		density = flag.Float64("density", 0.01, "fraction of cells to set")
		seed    = flag.Uint64("seed", 42, "PRNG seed")
	)
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	t, err := ktree.WithK(*stemK, *leafK)
	if err != nil {
		log.Fatalf("ktree.WithK: %v", err)
	}
	for range *grows {
		t.Grow()
	}
	log.Printf("matrix_width=%d stem_k=%d leaf_k=%d", t.MatrixWidth(), t.StemK(), t.LeafK())

	prng := rand.New(rand.NewPCG(*seed, *seed))
	n := int(float64(t.MatrixWidth()*t.MatrixWidth()) * *density)

	ts := time.Now()
	for range n {
		x := prng.IntN(t.MatrixWidth())
		y := prng.IntN(t.MatrixWidth())
		if err := t.Set(x, y, true); err != nil {
			log.Fatalf("Set(%d,%d): %v", x, y, err)
		}
	}
	log.Printf("set %d random bits in %v", n, time.Since(ts))

	m, err := t.ToMatrix()
	if err != nil {
		log.Fatalf("ToMatrix: %v", err)
	}
	log.Printf("round-tripped matrix: %dx%d", m.Width(), m.Height())

	if err := t.Shrink(); err != nil {
		log.Printf("Shrink: %v (expected once the tree holds information near the root)", err)
	} else {
		log.Printf("shrank to matrix_width=%d", t.MatrixWidth())
	}

	log.Printf("fingerprint=%x", t.Fingerprint())
}
