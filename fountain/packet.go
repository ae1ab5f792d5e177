/*
NAME
  packet.go

DESCRIPTION
  packet.go implements the on-air fountain packet format: sbn(1) || esi(2
  BE) || flags(1) || payload(blockSize) || crc16(2 BE).

  The sbn field is nominally a source-block number, but this
  module only ever transmits a single source-block group (payloads are
  capped at 200 bytes, which always fits in one group): sbn is repurposed
  to carry K mod 256, the source-block count, so that a decoder that joins
  mid-stream can size its decode matrix from any single valid packet
  without an additional wire field. See DESIGN.md.

AUTHOR
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package fountain implements a RaptorQ-style systematic fountain code:
// source blocks are sent as-is (systematic packets), followed by an
// unbounded stream of XOR-combination repair packets, letting a receiver
// recover the message from any sufficiently large, order-independent
// subset of packets.
package fountain

import (
	"encoding/binary"

	"github.com/ausocean/modem/bitops"
	"github.com/ausocean/modem/modemerr"
)

const (
	packetHeaderLen = 4 // sbn(1) + esi(2) + flags(1)
	packetCRCLen    = 2

	flagFirstPacket = 1 << 0
)

// Packet is a single fountain-coded packet.
type Packet struct {
	K       int // source-block count, carried in sbn mod 256.
	ESI     uint16
	First   bool
	Payload []byte
}

// PacketLen returns the on-air length, in bytes, of a fountain packet with
// the given block size.
func PacketLen(blockSize int) int {
	return packetHeaderLen + blockSize + packetCRCLen
}

// Encode serializes p to its on-air wire format.
func (p Packet) Encode() []byte {
	out := make([]byte, packetHeaderLen+len(p.Payload)+packetCRCLen)
	out[0] = byte(p.K)
	binary.BigEndian.PutUint16(out[1:3], p.ESI)
	if p.First {
		out[3] = flagFirstPacket
	}
	copy(out[packetHeaderLen:], p.Payload)
	crc := bitops.CRC16(out[:packetHeaderLen+len(p.Payload)])
	binary.BigEndian.PutUint16(out[packetHeaderLen+len(p.Payload):], crc)
	return out
}

// DecodePacket parses the wire format produced by Encode, verifying the
// CRC-16. A CRC failure is reported as modemerr.ErrHeaderCrc, which callers
// are expected to count rather than treat as fatal.
func DecodePacket(wire []byte) (Packet, error) {
	if len(wire) < packetHeaderLen+packetCRCLen {
		return Packet{}, modemerr.ErrInvalidLength
	}
	payloadLen := len(wire) - packetHeaderLen - packetCRCLen

	want := binary.BigEndian.Uint16(wire[packetHeaderLen+payloadLen:])
	got := bitops.CRC16(wire[:packetHeaderLen+payloadLen])
	if got != want {
		return Packet{}, modemerr.ErrHeaderCrc
	}

	p := Packet{
		K:       int(wire[0]),
		ESI:     binary.BigEndian.Uint16(wire[1:3]),
		First:   wire[3]&flagFirstPacket != 0,
		Payload: append([]byte(nil), wire[packetHeaderLen:packetHeaderLen+payloadLen]...),
	}
	return p, nil
}
