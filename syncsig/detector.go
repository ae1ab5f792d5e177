/*
NAME
  detector.go

DESCRIPTION
  detector.go implements the chirp preamble/postamble detector: a bounded
  ring buffer fed by addSamples, scored by normalized cross-correlation
  against the chirp template and a Goertzel sweep-band energy ratio, with
  fixed or adaptive thresholding.

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

	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/modem/fsk"
	"github.com/ausocean/modem/streambuf"
)

// ThresholdMode selects between a fixed correlation threshold and one that
// adapts to recently observed correlation values.
type ThresholdMode int

const (
	FixedThreshold ThresholdMode = iota
	AdaptiveThreshold
)

// PowerRatioFloor is the minimum chirp-energy ratio required to confirm a
// correlation peak.
const PowerRatioFloor = 0.6

// DefaultFixedThreshold is the correlation threshold used in FixedThreshold
// mode. Not a fixed wire constant; chosen high enough to reject noise
// while tolerating a reasonably noisy acoustic channel.
const DefaultFixedThreshold = 0.75

// adaptiveWindowSamples bounds the adaptive threshold's running statistics
// to the last 2s of input.
const adaptiveWindowSamples = 2 * SampleRate

// State is a chirp detector's position in its Idle -> Collecting ->
// Detected state machine.
type State int

const (
	Idle State = iota
	Collecting
	Detected
)

// ChirpDetector detects a single chirp template (the preamble's up-sweep or
// the postamble's down-sweep) in a stream of PCM samples delivered via
// AddSamples.
type ChirpDetector struct {
	template []float64
	buf      *streambuf.Buffer
	corr     *streambuf.Buffer // r-value history, for AdaptiveThreshold.

	mode      ThresholdMode
	threshold float64

	state   State
	hitPos  int64
	hitR    float64
	hitSeen bool

	// lastScoredEnd is the absolute stream index (exclusive) of the last
	// window already scored, or -1 if none yet.
	lastScoredEnd int64
}

// NewPreambleDetector returns a ChirpDetector tuned to the standard-mode
// up-chirp preamble.
func NewPreambleDetector(mode ThresholdMode) *ChirpDetector {
	return newChirpDetector(UpChirp, mode)
}

// NewPostambleDetector returns a ChirpDetector tuned to the standard-mode
// down-chirp postamble.
func NewPostambleDetector(mode ThresholdMode) *ChirpDetector {
	return newChirpDetector(DownChirp, mode)
}

func newChirpDetector(template []float64, mode ThresholdMode) *ChirpDetector {
	return &ChirpDetector{
		template:      template,
		buf:           streambuf.New(streambuf.DefaultCapacity),
		corr:          streambuf.New(adaptiveWindowSamples),
		mode:          mode,
		threshold:     DefaultFixedThreshold,
		lastScoredEnd: -1,
	}
}

// AddSamples appends chunk to the detector's buffer and scores every newly
// available ChirpSamples-length window. It returns the sample index
// (relative to the detector's last clear()) of the correlation peak on a
// hit, or -1 otherwise. Once Detected, the detector is terminal until
// Clear.
func (d *ChirpDetector) AddSamples(chunk []float64) int64 {
	if d.state == Detected {
		return -1
	}

	d.buf.Write(chunk)
	samples := d.buf.Samples()
	origin := d.buf.Origin()
	streamEnd := origin + int64(len(samples))

	if len(samples) >= len(d.template) {
		d.state = Collecting
	}

	// Evaluate every absolute window end-position that is new this call and
	// still fully present in the buffer.
	firstEnd := d.lastScoredEnd + 1
	if min := origin + int64(len(d.template)); firstEnd < min {
		firstEnd = min
	}
	for absEnd := firstEnd; absEnd <= streamEnd; absEnd++ {
		relEnd := int(absEnd - origin)
		window := samples[relEnd-len(d.template) : relEnd]
		r := normalizedCrossCorrelation(window, d.template)
		d.corr.Write([]float64{r})

		threshold := d.threshold
		if d.mode == AdaptiveThreshold {
			threshold = d.adaptiveThreshold()
		}

		if r >= threshold {
			ratio := chirpPowerRatio(window)
			if ratio >= PowerRatioFloor && (!d.hitSeen || r > d.hitR) {
				d.hitSeen = true
				d.hitR = r
				d.hitPos = absEnd - int64(len(d.template))
			}
		}
		d.lastScoredEnd = absEnd
	}

	if d.hitSeen {
		d.state = Detected
		return d.hitPos
	}
	return -1
}

// adaptiveThreshold returns the running mean of recent r-values plus 3
// standard deviations, clamped to [0.2, 0.8].
func (d *ChirpDetector) adaptiveThreshold() float64 {
	vals := d.corr.Samples()
	if len(vals) < 2 {
		return DefaultFixedThreshold
	}
	mean, std := stat.MeanStdDev(vals, nil)
	t := mean + 3*std
	if t < 0.2 {
		t = 0.2
	}
	if t > 0.8 {
		t = 0.8
	}
	return t
}

// Clear resets the detector to Idle, so the detector is safe to reuse. The
// next detection index is measured from this call.
func (d *ChirpDetector) Clear() {
	d.buf.Clear(0)
	d.corr.Clear(0)
	d.state = Idle
	d.hitSeen = false
	d.hitR = 0
	d.hitPos = 0
	d.lastScoredEnd = -1
}

// StateOf returns the detector's current state.
func (d *ChirpDetector) StateOf() State { return d.state }

func normalizedCrossCorrelation(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	denom := math.Sqrt(na * nb)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// chirpSweepFreqs samples the 200-4000Hz sweep band for the Goertzel energy
// ratio test.
var chirpSweepFreqs = func() []float64 {
	var freqs []float64
	for f := ChirpStartFreq; f <= ChirpEndFreq; f += 100 {
		freqs = append(freqs, f)
	}
	return freqs
}()

// chirpPowerRatio returns bandEnergy/(bandEnergy+total), where bandEnergy is
// the summed squared Goertzel magnitude at chirpSweepFreqs and total is the
// window's time-domain energy. The two terms are on different scales, so the
// result is not the fraction of the window's energy inside the sweep band:
// it is 0 for silence and stays close to 1 for broadband input as well as
// for a chirp.
func chirpPowerRatio(window []float64) float64 {
	var total float64
	for _, s := range window {
		total += s * s
	}
	if total == 0 {
		return 0
	}

	var bandEnergy float64
	for _, f := range chirpSweepFreqs {
		m := fsk.GoertzelMagnitude(window, SampleRate, f)
		bandEnergy += m * m
	}

	r := bandEnergy / (bandEnergy + total)
	if r > 1 {
		r = 1
	}
	return r
}
