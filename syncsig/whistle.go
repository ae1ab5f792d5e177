/*
NAME
  whistle.go

DESCRIPTION
  whistle.go implements the fountain-mode three-note whistle detector:
  three consecutive windows where the Goertzel magnitude at the expected
  frequency dominates the other two notes by >=6dB and exceeds
  threshold*median-band-power, triggered only when all three notes appear
  in order.

AUTHOR
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package syncsig

import (
	"math"
	"sort"

	"github.com/ausocean/modem/fsk"
	"github.com/ausocean/modem/streambuf"
)

// WhistleDominanceDB is the minimum dominance, in dB, the expected note's
// Goertzel magnitude must have over the other two notes.
const WhistleDominanceDB = 6.0

// WhistleThreshold scales the median band power floor a candidate window's
// expected-note magnitude must clear.
const WhistleThreshold = 2.0

// WhistleDetector detects the three-note fountain preamble: 800Hz, then
// 1200Hz, then 1600Hz, each held for WhistleToneSamples.
type WhistleDetector struct {
	buf   *streambuf.Buffer
	state State

	lastScoredEnd int64
	noteIdx       int // which of the 3 notes we're currently expecting, 0..2
	noteStart     int64
}

// NewWhistleDetector returns a ready-to-use WhistleDetector.
func NewWhistleDetector() *WhistleDetector {
	return &WhistleDetector{
		buf:           streambuf.New(streambuf.DefaultCapacity),
		lastScoredEnd: -1,
	}
}

// AddSamples appends chunk and scores newly available WhistleToneSamples
// windows against the note the detector currently expects. It returns the
// sample index (relative to the detector's last Clear) of the whistle's
// start on a hit, or -1 otherwise.
func (d *WhistleDetector) AddSamples(chunk []float64) int64 {
	if d.state == Detected {
		return -1
	}

	d.buf.Write(chunk)
	samples := d.buf.Samples()
	origin := d.buf.Origin()
	streamEnd := origin + int64(len(samples))

	if len(samples) >= WhistleToneSamples {
		d.state = Collecting
	}

	firstEnd := d.lastScoredEnd + 1
	if m := origin + int64(WhistleToneSamples); firstEnd < m {
		firstEnd = m
	}

	for absEnd := firstEnd; absEnd <= streamEnd; absEnd++ {
		relEnd := int(absEnd - origin)
		window := samples[relEnd-WhistleToneSamples : relEnd]
		absStart := absEnd - int64(WhistleToneSamples)

		if d.matchesNote(window, d.noteIdx) {
			if d.noteIdx == 0 {
				d.noteStart = absStart
			}
			d.noteIdx++
			if d.noteIdx == len(WhistleFrequencies) {
				d.state = Detected
				d.lastScoredEnd = absEnd
				return d.noteStart
			}
			// Next note is expected to start immediately after this window:
			// skip ahead so the next window scored is the one beginning at
			// absEnd.
			absEnd += WhistleToneSamples - 1
			d.lastScoredEnd = absEnd
			continue
		}

		// No match: if we were mid-sequence, drop back to expecting the first
		// note. Scanning resumes at the next window end; windows skipped over
		// while the sequence was in progress are not re-examined.
		if d.noteIdx > 0 {
			d.noteIdx = 0
		}
		d.lastScoredEnd = absEnd
	}

	return -1
}

// matchesNote reports whether window is dominated by WhistleFrequencies[i]
// relative to the other two whistle frequencies, by at least
// WhistleDominanceDB, and exceeds WhistleThreshold times the median
// magnitude across the full FSK bin band (used as the noise-floor proxy).
func (d *WhistleDetector) matchesNote(window []float64, i int) bool {
	var mags [3]float64
	for j, f := range WhistleFrequencies {
		mags[j] = fsk.GoertzelMagnitude(window, SampleRate, f)
	}
	target := mags[i]
	if target <= 0 {
		return false
	}
	for j := range mags {
		if j == i {
			continue
		}
		if mags[j] > 0 && dB(target/mags[j]) < WhistleDominanceDB {
			return false
		}
	}

	bandMags := fsk.GoertzelBinMagnitudes(window, SampleRate)
	median := medianOf(bandMags[:])
	return target >= WhistleThreshold*median
}

func dB(ratio float64) float64 {
	if ratio <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(ratio)
}

func medianOf(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Clear resets the detector to Idle.
func (d *WhistleDetector) Clear() {
	d.buf.Clear(0)
	d.state = Idle
	d.lastScoredEnd = -1
	d.noteIdx = 0
	d.noteStart = 0
}

// StateOf returns the detector's current state.
func (d *WhistleDetector) StateOf() State { return d.state }
