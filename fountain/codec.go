/*
NAME
  codec.go

DESCRIPTION
  codec.go implements the fountain mode's external operations:
  encodeFountain, startFountainStream/nextStreamBlock, and decodeFountain,
  composing the whistle preamble with the packet encoder/decoder.

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
	"io"

	"github.com/ausocean/modem/fsk"
	"github.com/ausocean/modem/modemerr"
	"github.com/ausocean/modem/syncsig"
	"github.com/ausocean/utils/logging"
)

// Codec implements the one-shot (non-incremental) fountain encode/decode
// operations.
type Codec struct {
	speed fsk.Speed
	log   logging.Logger
}

// NewCodec returns a ready-to-use fountain Codec, modulating at speed. log
// may be nil.
func NewCodec(speed fsk.Speed, log logging.Logger) *Codec {
	if log == nil {
		log = logging.New(logging.Error, io.Discard, false)
	}
	return &Codec{speed: speed, log: log}
}

// Encode emits the three-note whistle followed by systematic packets and
// enough repair packets to satisfy timeoutSec (if >0) or repairRatio
// otherwise.
func (c *Codec) Encode(payload []byte, timeoutSec float64, blockSize int, repairRatio float64) ([]float64, error) {
	enc, err := NewEncoder(payload, blockSize)
	if err != nil {
		return nil, err
	}

	symbolSamples := c.speed.SymbolSamples()
	numSymbols := symbolsForLen(PacketLen(enc.blockSize))
	packetDuration := float64(numSymbols*symbolSamples) / fsk.SampleRate

	total := enc.K() + enc.NumRepair(repairRatio)
	if timeoutSec > 0 {
		if n := int(timeoutSec / packetDuration); n > total {
			total = n
		}
	}

	out := append([]float64(nil), syncsig.Whistle...)
	for i := 0; i < total; i++ {
		out = append(out, modulateBytes(enc.NextPacket().Encode(), c.speed)...)
	}
	return out, nil
}

// Stream is a handle for on-demand fountain packet generation, per
// startFountainStream/nextStreamBlock/stopStreaming operations.
type Stream struct {
	enc          *Encoder
	speed        fsk.Speed
	sentPreamble bool
	stopped      bool
}

// StartFountainStream prepares a Stream that emits one packet's PCM per
// call to NextStreamBlock.
func (c *Codec) StartFountainStream(payload []byte, blockSize int) (*Stream, error) {
	enc, err := NewEncoder(payload, blockSize)
	if err != nil {
		return nil, err
	}
	return &Stream{enc: enc, speed: c.speed}, nil
}

// NextStreamBlock returns the next packet's PCM, prefixed with the whistle
// preamble on the first call.
func (s *Stream) NextStreamBlock() []float64 {
	if s.stopped {
		return nil
	}
	packet := modulateBytes(s.enc.NextPacket().Encode(), s.speed)
	if !s.sentPreamble {
		s.sentPreamble = true
		return append(append([]float64(nil), syncsig.Whistle...), packet...)
	}
	return packet
}

// StopStreaming marks the stream as finished; further NextStreamBlock
// calls return nil.
func (s *Stream) StopStreaming() { s.stopped = true }

// Decode performs a one-shot decode of pcm, feeding it to a fresh Decoder
// one second at a time and attempting TryDecode once at the end. timeoutSec
// is not consulted: a decode matrix that has not reached full rank once all
// of pcm has been fed is reported as FountainTimeout.
func (c *Codec) Decode(pcm []float64, timeoutSec float64, blockSize int) ([]byte, error) {
	dec := NewDecoder(blockSize, c.speed, c.log)
	for off := 0; off < len(pcm); off += fsk.SampleRate {
		end := off + fsk.SampleRate
		if end > len(pcm) {
			end = len(pcm)
		}
		dec.FeedChunk(pcm[off:end])
	}
	payload, err := dec.TryDecode()
	if err == modemerr.ErrNotYetDecodable {
		return nil, modemerr.ErrFountainTimeout
	}
	return payload, err
}
