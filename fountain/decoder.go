/*
NAME
  decoder.go

DESCRIPTION
  decoder.go implements the incremental fountain decoder: whistle-preamble
  detection, per-packet CRC checking and symbol-counted framing, and a
  persistent GF(2) decode matrix that resolves as soon as enough
  independent packets have arrived.

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
	"encoding/binary"

	"github.com/ausocean/modem/fsk"
	"github.com/ausocean/modem/modemerr"
	"github.com/ausocean/modem/streambuf"
	"github.com/ausocean/modem/syncsig"
	"github.com/ausocean/utils/logging"
)

// Stats reports the incremental decoder's progress, per the decoder's
// stats() operation.
type Stats struct {
	DecodedBlocks   int
	FailedBlocks    int
	ReceivedPackets int
}

// Decoder accumulates PCM samples across calls to FeedChunk and attempts,
// on demand via TryDecode, to resolve the source message from whatever
// packets have been received so far.
type Decoder struct {
	blockSize int
	speed     fsk.Speed
	log       logging.Logger

	buf *streambuf.Buffer
	pre *syncsig.WhistleDetector

	preambleFound   bool
	nextPacketStart int64
	packetLen       int

	matrix *gf2Matrix
	k      int
	stats  Stats
}

// NewDecoder returns a ready-to-use incremental fountain Decoder. log may
// be nil.
func NewDecoder(blockSize int, speed fsk.Speed, log logging.Logger) *Decoder {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Decoder{
		blockSize: blockSize,
		speed:     speed,
		log:       log,
		buf:       streambuf.New(streambuf.DefaultCapacity),
		pre:       syncsig.NewWhistleDetector(),
		packetLen: PacketLen(blockSize),
	}
}

// FeedChunk appends samples and processes every fully-received packet
// since the last call.
func (d *Decoder) FeedChunk(samples []float64) {
	d.buf.Write(samples)

	if !d.preambleFound {
		idx := d.pre.AddSamples(samples)
		if idx < 0 {
			return
		}
		d.preambleFound = true
		d.nextPacketStart = idx + int64(len(syncsig.Whistle))
	}

	packetSamples := d.packetLen
	numSymbols := symbolsForLen(d.packetLen)
	symbolSamples := d.speed.SymbolSamples()
	packetSampleLen := int64(numSymbols * symbolSamples)

	origin := d.buf.Origin()
	streamEnd := origin + int64(d.buf.Len())

	for d.nextPacketStart+packetSampleLen <= streamEnd {
		relStart := int(d.nextPacketStart - origin)
		window := d.buf.Samples()[relStart : relStart+int(packetSampleLen)]

		wire, err := demodulateBytes(window, 0, packetSamples, d.speed)
		d.nextPacketStart += packetSampleLen
		d.stats.ReceivedPackets++
		if err != nil {
			d.stats.FailedBlocks++
			continue
		}

		d.handlePacket(wire)
	}
}

func (d *Decoder) handlePacket(wire []byte) {
	pkt, err := DecodePacket(wire)
	if err != nil {
		d.stats.FailedBlocks++
		if d.log != nil {
			d.log.Debug("fountain packet CRC failure")
		}
		return
	}

	if d.matrix == nil {
		d.k = pkt.K
		d.matrix = newGF2Matrix(d.k)
	}
	if pkt.K != d.k {
		d.stats.FailedBlocks++
		return
	}

	var indices []int
	if int(pkt.ESI) < d.k {
		indices = []int{int(pkt.ESI)}
	} else {
		indices = repairIndices(pkt.ESI, d.k)
	}

	if d.matrix.addEquation(maskFromIndices(indices), pkt.Payload) {
		d.stats.DecodedBlocks++
	}
}

// TryDecode attempts to resolve the source message from packets received
// so far. It returns modemerr.ErrNotYetDecodable if the decode matrix is
// not yet full rank.
func (d *Decoder) TryDecode() ([]byte, error) {
	if d.matrix == nil || !d.matrix.determined() {
		return nil, modemerr.ErrNotYetDecodable
	}

	solved := d.matrix.solve()
	data := make([]byte, 0, d.k*d.blockSize)
	for _, b := range solved {
		data = append(data, b...)
	}
	if len(data) < 2 {
		return nil, modemerr.ErrFountainUnrecoverable
	}

	trueLen := int(binary.BigEndian.Uint16(data[:2]))
	if trueLen < 0 || 2+trueLen > len(data) {
		return nil, modemerr.ErrFountainUnrecoverable
	}
	return data[2 : 2+trueLen], nil
}

// Stats returns the decoder's current progress counters.
func (d *Decoder) Stats() Stats { return d.stats }
