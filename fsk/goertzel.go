/*
NAME
  goertzel.go

DESCRIPTION
  goertzel.go implements the Goertzel algorithm for non-coherent, single-bin
  energy detection: O(N) per bin rather than a full O(N log N) FFT, which
  matters here since every symbol window is scored against 96 candidate
  bins. Grounded on the DTMF decoder's Q1/Q2 recurrence (see
  doismellburning-samoyed's dtmf.go), generalized from a fixed 8-tone table
  to an arbitrary target frequency.

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

import "math"

// GoertzelMagnitude returns the magnitude of the Goertzel filter tuned to
// freq, evaluated over samples at the given sampleRate.
func GoertzelMagnitude(samples []float64, sampleRate int, freq float64) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}
	k := float64(n) * freq / float64(sampleRate)
	coef := 2 * math.Cos(2*math.Pi*k/float64(n))

	var q1, q2 float64
	for _, s := range samples {
		q0 := s + coef*q1 - q2
		q2 = q1
		q1 = q0
	}
	return math.Sqrt(q1*q1 + q2*q2 - q1*q2*coef)
}

// BinFrequency returns the tone frequency, in Hz, of bin k.
func BinFrequency(k int) float64 {
	return BaseFreq + BinSpacing*float64(k)
}

// GoertzelBinMagnitudes scores every one of the NumBins candidate
// frequencies against samples, returning their Goertzel magnitudes indexed
// by bin number.
func GoertzelBinMagnitudes(samples []float64, sampleRate int) [NumBins]float64 {
	var mags [NumBins]float64
	for k := 0; k < NumBins; k++ {
		mags[k] = GoertzelMagnitude(samples, sampleRate, BinFrequency(k))
	}
	return mags
}
