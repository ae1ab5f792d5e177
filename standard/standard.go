/*
NAME
  standard.go

DESCRIPTION
  standard.go implements the standard encoder/decoder: preamble, 85
  FSK-modulated coded-block symbols, postamble.

AUTHOR
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package standard orchestrates the preamble/FSK-symbols/postamble encoder
// and decoder used for one-shot (non-fountain) transmissions.
package standard

import (
	"io"

	"github.com/ausocean/modem/fec"
	"github.com/ausocean/modem/fsk"
	"github.com/ausocean/modem/modemerr"
	"github.com/ausocean/modem/syncsig"
	"github.com/ausocean/utils/logging"
)

// symbolsPerBlock is ceil(fec.BlockLen / fsk.BytesPerSymbol) = ceil(255/3).
const symbolsPerBlock = (fec.BlockLen + fsk.BytesPerSymbol - 1) / fsk.BytesPerSymbol

// Codec wraps a frame codec and a logger to implement Encode/Decode.
type Codec struct {
	frame *fec.Codec
	log   logging.Logger
}

// NewCodec returns a ready-to-use standard Codec. log may be nil, in which
// case log messages are discarded.
func NewCodec(log logging.Logger) *Codec {
	if log == nil {
		log = logging.New(logging.Error, io.Discard, false)
	}
	return &Codec{frame: fec.NewCodec(), log: log}
}

// Encode builds the full PCM waveform for payload at the given speed:
// preamble, 85 FSK symbols carrying the RS-coded block, postamble.
func (c *Codec) Encode(payload []byte, speed fsk.Speed) ([]float64, error) {
	block, err := c.frame.EncodeFrame(payload, 0)
	if err != nil {
		return nil, err
	}

	symbolSamples := speed.SymbolSamples()
	out := make([]float64, 0, len(syncsig.UpChirp)+symbolsPerBlock*symbolSamples+len(syncsig.DownChirp))
	out = append(out, syncsig.UpChirp...)

	for i := 0; i < symbolsPerBlock; i++ {
		var tuple [fsk.BytesPerSymbol]byte
		for j := 0; j < fsk.BytesPerSymbol; j++ {
			idx := i*fsk.BytesPerSymbol + j
			if idx < len(block) {
				tuple[j] = block[idx]
			}
		}
		out = append(out, fsk.ModulateSymbol(tuple, symbolSamples)...)
	}

	out = append(out, syncsig.DownChirp...)
	return out, nil
}

// Decode recovers the payload from samples: locates the preamble,
// demodulates symbolsPerBlock FSK symbols, optionally checks for the
// postamble (non-fatal if absent), and decodes the resulting coded block.
func (c *Codec) Decode(samples []float64, speed fsk.Speed) ([]byte, error) {
	pre := syncsig.NewPreambleDetector(syncsig.FixedThreshold)
	// Feed the detector one second at a time so a preamble near the start of
	// a long capture is scored before its bounded buffer evicts it.
	preIdx := int64(-1)
	for off := 0; off < len(samples) && preIdx < 0; off += fsk.SampleRate {
		end := off + fsk.SampleRate
		if end > len(samples) {
			end = len(samples)
		}
		preIdx = pre.AddSamples(samples[off:end])
	}
	if preIdx < 0 {
		return nil, modemerr.ErrNoPreamble
	}

	symbolSamples := speed.SymbolSamples()
	dataStart := int(preIdx) + len(syncsig.UpChirp)

	block := make([]byte, 0, fec.BlockLen)
	for i := 0; i < symbolsPerBlock; i++ {
		nominal := dataStart + i*symbolSamples
		tuple, _, err := fsk.DemodulateSymbol(samples, nominal, symbolSamples)
		if err != nil {
			return nil, err
		}
		block = append(block, tuple[:]...)
	}
	block = block[:fec.BlockLen]

	post := syncsig.NewPostambleDetector(syncsig.FixedThreshold)
	postStart := dataStart + symbolsPerBlock*symbolSamples - len(syncsig.DownChirp)/2
	if postStart < 0 {
		postStart = 0
	}
	if postStart < len(samples) {
		if idx := post.AddSamples(samples[postStart:]); idx < 0 {
			c.log.Debug("postamble not found; continuing")
		}
	}

	return c.frame.DecodeFrame(block)
}
