/*
NAME
  speed.go

DESCRIPTION
  speed.go defines the three modulation speeds and their symbol durations.

AUTHOR
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package fsk implements the multi-tone FSK modulator and demodulator: 6 of
// 96 simultaneously-active tone bins per symbol, encoding 3 bytes via a
// combinatorial rank/unrank bijection, with Goertzel-based non-coherent
// energy detection at the receiver.
package fsk

import "github.com/pkg/errors"

// Speed selects the symbol duration; Fast and Fastest trade robustness for
// throughput by giving the Goertzel filters a shorter window.
type Speed int

const (
	Normal Speed = iota
	Fast
	Fastest
)

// SymbolSamples returns the number of PCM samples per symbol at s, for the
// fixed SampleRate of 16kHz: 192/96/48 ms respectively.
func (s Speed) SymbolSamples() int {
	switch s {
	case Normal:
		return 3072
	case Fast:
		return 1536
	case Fastest:
		return 768
	default:
		return 3072
	}
}

// String returns the name of s.
func (s Speed) String() string {
	switch s {
	case Normal:
		return "Normal"
	case Fast:
		return "Fast"
	case Fastest:
		return "Fastest"
	default:
		return "Unknown"
	}
}

// SpeedFromString parses the String() form back into a Speed.
func SpeedFromString(s string) (Speed, error) {
	switch s {
	case "Normal":
		return Normal, nil
	case "Fast":
		return Fast, nil
	case "Fastest":
		return Fastest, nil
	default:
		return Normal, errors.Errorf("unknown speed (%s)", s)
	}
}
