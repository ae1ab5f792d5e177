/*
NAME
  encoder.go

DESCRIPTION
  encoder.go implements the fountain encoder: splitting a payload into K
  source blocks, emitting them systematically, then generating repair
  packets indefinitely per the schedule in schedule.go.

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
	"math"

	"github.com/ausocean/modem/fec"
	"github.com/ausocean/modem/modemerr"
)

// DefaultBlockSize and DefaultRepairRatio are the fountain mode's default
// fountain configuration.
const (
	DefaultBlockSize   = 16
	DefaultRepairRatio = 0.5
)

// Encoder splits a payload into source blocks and emits systematic, then
// repair, packets on successive calls to NextPacket.
type Encoder struct {
	blockSize int
	k         int
	blocks    [][]byte
	nextESI   uint16
}

// NewEncoder prepares an Encoder for payload (1..fec.MaxPayload bytes).
// The true payload length is prefixed as a 2-byte big-endian header before
// splitting, so it survives the block-sized, zero-padded split; see
// packet.go's doc comment for why sbn (not a dedicated header field)
// carries K to the decoder.
func NewEncoder(payload []byte, blockSize int) (*Encoder, error) {
	if len(payload) == 0 || len(payload) > fec.MaxPayload {
		return nil, modemerr.ErrPayloadTooLarge
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	data := make([]byte, 2+len(payload))
	binary.BigEndian.PutUint16(data[:2], uint16(len(payload)))
	copy(data[2:], payload)

	k := (len(data) + blockSize - 1) / blockSize
	blocks := make([][]byte, k)
	for i := 0; i < k; i++ {
		b := make([]byte, blockSize)
		copy(b, data[i*blockSize:])
		blocks[i] = b
	}

	return &Encoder{blockSize: blockSize, k: k, blocks: blocks}, nil
}

// K returns the number of source blocks the payload was split into.
func (e *Encoder) K() int { return e.k }

// NumRepair returns the number of repair packets NewCodec's non-streaming
// Encode would emit at the given repairRatio.
func (e *Encoder) NumRepair(repairRatio float64) int {
	return int(math.Ceil(float64(e.k) * repairRatio))
}

// NextPacket returns the next packet in the stream: systematic copies of
// the K source blocks (ESI 0..K-1), then an unbounded sequence of repair
// packets (ESI K, K+1, ...).
func (e *Encoder) NextPacket() Packet {
	esi := e.nextESI
	e.nextESI++

	if int(esi) < e.k {
		return Packet{K: e.k, ESI: esi, First: esi == 0, Payload: e.blocks[esi]}
	}

	indices := repairIndices(esi, e.k)
	payload := make([]byte, e.blockSize)
	for _, idx := range indices {
		payload = xorBytes(payload, e.blocks[idx])
	}
	return Packet{K: e.k, ESI: esi, Payload: payload}
}
