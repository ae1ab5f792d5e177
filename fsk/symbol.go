/*
NAME
  symbol.go

DESCRIPTION
  symbol.go implements per-symbol modulation and demodulation: summing six
  equal-amplitude tones with a raised-cosine edge ramp on encode, and a
  Goertzel top-6 bin search with local resync on decode.

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

import (
	"math"
	"sort"

	"github.com/ausocean/modem/modemerr"
)

// SampleRate, BaseFreq and BinSpacing are the fixed tone-plan parameters:
// 96 bins at 800 + 20*k Hz, k in [0,95].
const (
	SampleRate = 16000
	BaseFreq   = 800
	BinSpacing = 20

	// peakAmplitude bounds the modulated waveform's peak magnitude.
	peakAmplitude = 0.9

	// rampSamples is the raised-cosine edge length, 1ms; the ramp
	// suppresses spectral splatter at symbol boundaries.
	rampSamples = SampleRate / 1000
)

// ModulateSymbol returns symbolSamples PCM samples encoding the 3-byte
// tuple b: six equal-amplitude tones at the bin frequencies chosen by
// BytesToBins, scaled so the peak magnitude stays within peakAmplitude,
// with a raised-cosine ramp applied at both edges.
func ModulateSymbol(b [BytesPerSymbol]byte, symbolSamples int) []float64 {
	bins := BytesToBins(b)
	out := make([]float64, symbolSamples)

	for n := 0; n < symbolSamples; n++ {
		var sum float64
		t := float64(n) / SampleRate
		for _, bin := range bins {
			sum += math.Sin(2 * math.Pi * BinFrequency(bin) * t)
		}
		out[n] = sum
	}

	// Six unit sinusoids sum to a peak of 6; normalize then scale to
	// peakAmplitude.
	for i := range out {
		out[i] = out[i] / TonesPerSymbol * peakAmplitude
	}
	applyRaisedCosineRamp(out)
	return out
}

// applyRaisedCosineRamp tapers the first and last rampSamples of buf with a
// raised-cosine window, in place.
func applyRaisedCosineRamp(buf []float64) {
	n := rampSamples
	if n*2 > len(buf) {
		n = len(buf) / 2
	}
	for i := 0; i < n; i++ {
		w := 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(n)))
		buf[i] *= w
		buf[len(buf)-1-i] *= w
	}
}

// DemodulateSymbol recovers the 3-byte tuple encoded in the symbolSamples
// window samples[start:start+symbolSamples], performing a local resync
// search of +/- symbolSamples/8 around start and selecting the offset that
// maximizes the summed magnitude of the top 6 Goertzel bins.
//
// It returns the recovered bytes and the resync offset applied (relative to
// start), or modemerr.ErrInsufficientSamples if no full window fits within
// the search range.
func DemodulateSymbol(samples []float64, start, symbolSamples int) ([BytesPerSymbol]byte, int, error) {
	search := symbolSamples / 8

	bestOffset := 0
	bestScore := -1.0
	var bestBins [TonesPerSymbol]int
	found := false

	for offset := -search; offset <= search; offset++ {
		s := start + offset
		if s < 0 || s+symbolSamples > len(samples) {
			continue
		}
		window := samples[s : s+symbolSamples]
		bins, score := topBins(window)
		found = true
		if score > bestScore {
			bestScore = score
			bestOffset = offset
			bestBins = bins
		}
	}

	if !found {
		return [BytesPerSymbol]byte{}, 0, modemerr.ErrInsufficientSamples
	}
	return BinsToBytes(bestBins), bestOffset, nil
}

// topBins returns the TonesPerSymbol bins with the largest Goertzel
// magnitude in window, sorted ascending by bin index (ties broken by lower
// bin index), along with their summed magnitude.
func topBins(window []float64) ([TonesPerSymbol]int, float64) {
	mags := GoertzelBinMagnitudes(window, SampleRate)

	type scored struct {
		bin int
		mag float64
	}
	all := make([]scored, NumBins)
	for k := 0; k < NumBins; k++ {
		all[k] = scored{bin: k, mag: mags[k]}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].mag != all[j].mag {
			return all[i].mag > all[j].mag
		}
		return all[i].bin < all[j].bin
	})

	var bins [TonesPerSymbol]int
	var sum float64
	for i := 0; i < TonesPerSymbol; i++ {
		bins[i] = all[i].bin
		sum += all[i].mag
	}
	sort.Ints(bins[:])
	return bins, sum
}
