/*
NAME
  header.go

DESCRIPTION
  header.go implements the frame header and the encodeFrame/decodeFrame
  operations: a length/sequence/CRC8 header, wrapped in a
  223-byte data vector and protected by RS(223,255).

AUTHOR
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package fec

import (
	"github.com/ausocean/modem/bitops"
	"github.com/ausocean/modem/modemerr"
)

// MaxPayload is the largest payload, in bytes, accepted for a single coded
// frame; headerLen(4) + MaxPayload stays within DataLen(223).
const MaxPayload = 200

const headerLen = 4

// FrameHeader is the 4-byte header prefixed to every coded frame's data
// vector: payloadLen, sequence, flags, and a CRC-8 over the first three
// bytes.
type FrameHeader struct {
	PayloadLen byte
	Sequence   byte
	Flags      byte
}

// bytes returns the 4-byte wire encoding of h, including its CRC-8.
func (h FrameHeader) bytes() [headerLen]byte {
	var b [headerLen]byte
	b[0] = h.PayloadLen
	b[1] = h.Sequence
	b[2] = h.Flags
	b[3] = bitops.CRC8(b[:3])
	return b
}

// Codec wraps a single reusable RS(223,255) codec for frame encode/decode.
type Codec struct {
	rs *RSCodec
}

// NewCodec returns a ready-to-use frame Codec.
func NewCodec() *Codec {
	return &Codec{rs: NewRSCodec()}
}

// EncodeFrame builds a 255-byte coded block from payload (1..200 bytes) and
// a sequence number.
func (c *Codec) EncodeFrame(payload []byte, sequence byte) ([]byte, error) {
	if len(payload) == 0 || len(payload) > MaxPayload {
		return nil, modemerr.ErrPayloadTooLarge
	}
	h := FrameHeader{PayloadLen: byte(len(payload)), Sequence: sequence}
	hb := h.bytes()

	data := make([]byte, DataLen)
	copy(data, hb[:])
	copy(data[headerLen:], payload)
	// Remaining bytes are left zero, satisfying the "rest of the 223 data
	// positions are... zero-valued" invariant.

	return c.rs.Encode(data)
}

// DecodeFrame reverses EncodeFrame: RS-corrects up to 16 byte errors,
// verifies the header CRC-8, and returns the payload.
func (c *Codec) DecodeFrame(block []byte) ([]byte, error) {
	corrected, _, err := c.rs.Decode(block)
	if err != nil {
		return nil, modemerr.ErrFecUnrecoverable
	}

	hdr := corrected[:headerLen]
	want := bitops.CRC8(hdr[:3])
	if hdr[3] != want {
		return nil, modemerr.ErrHeaderCrc
	}

	payloadLen := int(hdr[0])
	if payloadLen == 0 || payloadLen > MaxPayload || headerLen+payloadLen > DataLen {
		return nil, modemerr.ErrInvalidLength
	}

	payload := make([]byte, payloadLen)
	copy(payload, corrected[headerLen:headerLen+payloadLen])
	return payload, nil
}
