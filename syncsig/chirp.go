/*
NAME
  chirp.go

DESCRIPTION
  chirp.go generates the standard-mode preamble (ascending linear chirp,
  200->4000 Hz) and postamble (the same sweep reversed), and the
  fountain-mode three-note whistle, as precomputed, reused sample tables.

AUTHOR
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package syncsig generates and detects the chirp preamble/postamble and
// three-note whistle signals used to bracket a modulated frame.
package syncsig

import "math"

// SampleRate is the fixed PCM sample rate for all sync signals.
const SampleRate = 16000

// ChirpSamples is the length, in samples, of the preamble/postamble sweep:
// 250ms at 16kHz.
const ChirpSamples = 4000

// ChirpStartFreq and ChirpEndFreq bound the preamble's linear frequency
// sweep.
const (
	ChirpStartFreq = 200.0
	ChirpEndFreq   = 4000.0
)

// WhistleToneSamples is the length, in samples, of a single whistle note:
// ~83.33ms at 16kHz.
const WhistleToneSamples = 1333

// WhistleFrequencies are the three notes of the fountain-mode whistle, in
// order.
var WhistleFrequencies = [3]float64{800, 1200, 1600}

// UpChirp and DownChirp are the precomputed preamble and postamble
// waveforms. Whistle is the precomputed three-note fountain preamble.
// All three are immutable after init and safe to share across detector and
// encoder instances.
var (
	UpChirp   []float64
	DownChirp []float64
	Whistle   []float64
)

func init() {
	UpChirp = generateChirp(ChirpStartFreq, ChirpEndFreq, ChirpSamples, SampleRate)
	DownChirp = reversed(UpChirp)
	Whistle = generateWhistle()
}

// generateChirp builds s[n] = sin(2*pi*phase(n)), where phase is the
// integral of the linearly-swept instantaneous frequency f(t) = f0 +
// (f1-f0)*(t/duration).
func generateChirp(f0, f1 float64, n, sampleRate int) []float64 {
	duration := float64(n) / float64(sampleRate)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		// Integral of f0 + (f1-f0)*(t/duration) dt.
		phase := 2 * math.Pi * (f0*t + (f1-f0)*t*t/(2*duration))
		out[i] = math.Sin(phase)
	}
	return out
}

func reversed(s []float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func generateWhistle() []float64 {
	out := make([]float64, 0, WhistleToneSamples*len(WhistleFrequencies))
	for _, f := range WhistleFrequencies {
		for n := 0; n < WhistleToneSamples; n++ {
			t := float64(n) / SampleRate
			out = append(out, math.Sin(2*math.Pi*f*t))
		}
	}
	return out
}
