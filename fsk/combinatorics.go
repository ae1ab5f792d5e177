/*
NAME
  combinatorics.go

DESCRIPTION
  combinatorics.go implements the fixed bijection between a 3-byte (24-bit)
  tuple and a strictly increasing 6-subset of [0,96), via the combinatorial
  number system: rank(c_1<...<c_6) = sum_i C(c_i, i), unrank via repeated
  "choose" subtraction. The exact byte/tone-set bijection is an implementer
  choice (§9); this is the one this module commits to, and both encoder and
  decoder must agree on it for wire compatibility.

AUTHOR
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package fsk

// NumBins, TonesPerSymbol and BytesPerSymbol are the fixed combinatorial
// mapping parameters: C(96,6) > 2^24, so every 3-byte tuple has a unique
// 6-subset of bins.
const (
	NumBins        = 96
	TonesPerSymbol = 6
	BytesPerSymbol = 3

	maxRank = 1 << 24 // 2^24, the size of the 3-byte tuple space.
)

// binom[n][k] is C(n,k) for n in [0,96] and k in [0,6].
var binom [NumBins + 1][TonesPerSymbol + 1]uint64

func init() {
	for n := 0; n <= NumBins; n++ {
		binom[n][0] = 1
		for k := 1; k <= TonesPerSymbol; k++ {
			if k > n {
				continue
			}
			if k == n {
				binom[n][k] = 1
				continue
			}
			binom[n][k] = binom[n-1][k-1] + binom[n-1][k]
		}
	}
}

// rankBins returns the combinatorial-number-system rank of a strictly
// increasing 6-subset of [0,96). bins must already be sorted ascending.
func rankBins(bins [TonesPerSymbol]int) uint32 {
	var n uint64
	for i, c := range bins {
		// i is 0-indexed here; the combinatorial number system indexes
		// positions 1..TonesPerSymbol, so the i-th (0-indexed) smallest
		// element contributes C(c, i+1).
		n += binom[c][i+1]
	}
	return uint32(n)
}

// unrankBins inverts rankBins: given n in [0, 2^24), returns the unique
// strictly increasing 6-subset of [0,96) with that combinatorial rank.
func unrankBins(n uint32) [TonesPerSymbol]int {
	var bins [TonesPerSymbol]int
	rem := uint64(n)
	for i := TonesPerSymbol; i >= 1; i-- {
		c := i - 1
		for c+1 <= NumBins && binom[c+1][i] <= rem {
			c++
		}
		bins[i-1] = c
		rem -= binom[c][i]
	}
	return bins
}

// BytesToBins converts a 3-byte big-endian tuple to its 6 bin indices,
// sorted ascending.
func BytesToBins(b [BytesPerSymbol]byte) [TonesPerSymbol]int {
	n := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	return unrankBins(n)
}

// BinsToBytes inverts BytesToBins. bins need not be pre-sorted.
func BinsToBytes(bins [TonesPerSymbol]int) [BytesPerSymbol]byte {
	sorted := bins
	// Insertion sort: TonesPerSymbol is fixed and small.
	for i := 1; i < len(sorted); i++ {
		v := sorted[i]
		j := i - 1
		for j >= 0 && sorted[j] > v {
			sorted[j+1] = sorted[j]
			j--
		}
		sorted[j+1] = v
	}
	n := rankBins(sorted)
	return [BytesPerSymbol]byte{byte(n >> 16), byte(n >> 8), byte(n)}
}
