/*
NAME
  modulate.go

DESCRIPTION
  modulate.go packs/unpacks an arbitrary-length fountain packet's wire
  bytes into/from consecutive FSK symbols, with no inter-packet gap and no
  per-packet preamble (packet boundaries are recovered
  by counting symbols from the initial whistle preamble").

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

import (
	"github.com/ausocean/modem/fsk"
	"github.com/ausocean/modem/modemerr"
)

// symbolsForLen returns the number of FSK symbols needed to carry n bytes.
func symbolsForLen(n int) int {
	return (n + fsk.BytesPerSymbol - 1) / fsk.BytesPerSymbol
}

// modulateBytes packs wire into consecutive FSK symbols at the given
// speed, zero-padding the final partial symbol.
func modulateBytes(wire []byte, speed fsk.Speed) []float64 {
	symbolSamples := speed.SymbolSamples()
	n := symbolsForLen(len(wire))
	out := make([]float64, 0, n*symbolSamples)
	for i := 0; i < n; i++ {
		var tuple [fsk.BytesPerSymbol]byte
		for j := 0; j < fsk.BytesPerSymbol; j++ {
			idx := i*fsk.BytesPerSymbol + j
			if idx < len(wire) {
				tuple[j] = wire[idx]
			}
		}
		out = append(out, fsk.ModulateSymbol(tuple, symbolSamples)...)
	}
	return out
}

// demodulateBytes recovers wireLen bytes starting at sample index start,
// using numSymbols = symbolsForLen(wireLen) consecutive FSK symbols with no
// per-symbol resync (fountain packets are framed purely by symbol count, so
// a resync search would risk desynchronizing subsequent packets).
func demodulateBytes(samples []float64, start, wireLen int, speed fsk.Speed) ([]byte, error) {
	symbolSamples := speed.SymbolSamples()
	numSymbols := symbolsForLen(wireLen)

	out := make([]byte, 0, numSymbols*fsk.BytesPerSymbol)
	for i := 0; i < numSymbols; i++ {
		nominal := start + i*symbolSamples
		if nominal < 0 || nominal+symbolSamples > len(samples) {
			return nil, modemerr.ErrInsufficientSamples
		}
		// Passing exactly one symbol's samples leaves DemodulateSymbol no
		// room to search, so the symbol is read at its nominal position.
		tuple, _, err := fsk.DemodulateSymbol(samples[nominal:nominal+symbolSamples], 0, symbolSamples)
		if err != nil {
			return nil, err
		}
		out = append(out, tuple[:]...)
	}
	return out[:wireLen], nil
}
