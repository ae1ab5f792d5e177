/*
NAME
  gf2matrix.go

DESCRIPTION
  gf2matrix.go implements incremental Gaussian elimination over GF(2) for
  solving the fountain decoder's linear system: each received packet is one
  equation (a set of source-block indices XORed together equals the
  packet's payload), and the matrix resolves as soon as enough independent
  equations have arrived.

  gonum's matrix types operate over the reals and aren't a fit for this
  XOR/GF(2) arithmetic (see DESIGN.md); this hand-rolled bitset-based
  solver is grounded on the elimination structure of
  other_examples' google-gofountain sparseMatrix (addEquation / reduce /
  determined), adapted to resolve eagerly per equation rather than in a
  separate batch pass.

AUTHOR
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package fountain

import "math/bits"

// maxSourceBlocks bounds the decode matrix's column count: payloads are
// capped at fec.MaxPayload (200) bytes, so even a 1-byte blockSize never
// exceeds this.
const maxSourceBlocks = 256

const maskWords = maxSourceBlocks / 64

// gf2mask is a bitset over source-block indices.
type gf2mask [maskWords]uint64

func maskFromIndices(indices []int) gf2mask {
	var m gf2mask
	for _, i := range indices {
		m[i/64] |= 1 << uint(i%64)
	}
	return m
}

func (m gf2mask) xor(o gf2mask) gf2mask {
	for i := range m {
		m[i] ^= o[i]
	}
	return m
}

// lowestSetBit returns the index of the lowest set bit in m, or -1 if m is
// all zero.
func (m gf2mask) lowestSetBit() int {
	for w, word := range m {
		if word != 0 {
			return w*64 + bits.TrailingZeros64(word)
		}
	}
	return -1
}

func (m gf2mask) bit(i int) bool {
	return m[i/64]&(1<<uint(i%64)) != 0
}

// gf2equation is one row of the decode matrix: a set of unknowns XORed
// together equals value.
type gf2equation struct {
	mask  gf2mask
	value []byte
}

// gf2Matrix accumulates equations and resolves them as soon as each
// contributes a new pivot, per the elimination argument in this file's doc
// comment.
type gf2Matrix struct {
	k    int
	rows map[int]*gf2equation // keyed by pivot column
}

func newGF2Matrix(k int) *gf2Matrix {
	return &gf2Matrix{k: k, rows: make(map[int]*gf2equation, k)}
}

// addEquation reduces (mask, value) against existing pivots and, if it
// contributes new information, installs it as a new pivot row. It reports
// whether a new pivot was established.
func (m *gf2Matrix) addEquation(mask gf2mask, value []byte) bool {
	for {
		col := mask.lowestSetBit()
		if col < 0 {
			return false // fully reduced to the zero equation: redundant.
		}
		existing, ok := m.rows[col]
		if !ok {
			m.rows[col] = &gf2equation{mask: mask, value: append([]byte(nil), value...)}
			return true
		}
		mask = mask.xor(existing.mask)
		value = xorBytes(value, existing.value)
	}
}

// determined reports whether every source block has a resolved pivot.
func (m *gf2Matrix) determined() bool {
	return len(m.rows) >= m.k
}

// solve back-substitutes the triangular system and returns the resolved
// value for every source-block index in [0,k).
func (m *gf2Matrix) solve() [][]byte {
	solved := make([][]byte, m.k)
	for col := m.k - 1; col >= 0; col-- {
		row := m.rows[col]
		value := append([]byte(nil), row.value...)
		for b := col + 1; b < m.k; b++ {
			if row.mask.bit(b) {
				value = xorBytes(value, solved[b])
			}
		}
		solved[col] = value
	}
	return solved
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	copy(out, a)
	for i := range out {
		if i < len(b) {
			out[i] ^= b[i]
		}
	}
	return out
}
