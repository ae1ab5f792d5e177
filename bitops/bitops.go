/*
NAME
  bitops.go

DESCRIPTION
  bitops.go provides the byte/bit plumbing shared by the frame codec and the
  FSK symbol mapper: big-endian packing helpers and a bit reader modelled
  on the h264dec bits.BitReader.

AUTHOR
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bitops provides byte/bit packing primitives used across the modem
// core.
package bitops

import "github.com/pkg/errors"

// Uint24BE returns the 24-bit big-endian integer held in b. b must have
// length 3.
func Uint24BE(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// PutUint24BE writes the low 24 bits of v into b as big-endian. b must have
// length 3.
func PutUint24BE(b []byte, v uint32) {
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}

// ChunkBytes splits data into chunks of n bytes, zero-padding the final
// chunk if len(data) is not a multiple of n.
func ChunkBytes(data []byte, n int) [][]byte {
	if n <= 0 {
		return nil
	}
	numChunks := (len(data) + n - 1) / n
	if numChunks == 0 {
		numChunks = 1
	}
	chunks := make([][]byte, numChunks)
	for i := range chunks {
		chunk := make([]byte, n)
		start := i * n
		end := start + n
		if start < len(data) {
			if end > len(data) {
				end = len(data)
			}
			copy(chunk, data[start:end])
		}
		chunks[i] = chunk
	}
	return chunks
}

// BitReader reads bits most-significant-bit first from an in-memory byte
// slice. Modelled on codec/h264/h264dec/bits.BitReader, but operating on a
// slice rather than an io.Reader since FSK symbols are always fully buffered
// before demodulation.
type BitReader struct {
	data []byte
	pos  int // bit position from the start of data
}

// NewBitReader returns a BitReader over data.
func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

// ReadBits reads n (<=32) bits and returns them right-justified in a
// uint32. It returns an error if fewer than n bits remain.
func (r *BitReader) ReadBits(n int) (uint32, error) {
	if n < 0 || n > 32 {
		return 0, errors.Errorf("bitops: invalid bit count %d", n)
	}
	if r.pos+n > len(r.data)*8 {
		return 0, errors.New("bitops: read past end of buffer")
	}
	var v uint32
	for i := 0; i < n; i++ {
		byteIdx := r.pos / 8
		bitIdx := 7 - r.pos%8
		bit := (r.data[byteIdx] >> uint(bitIdx)) & 1
		v = v<<1 | uint32(bit)
		r.pos++
	}
	return v, nil
}

// BitsRemaining returns the number of unread bits.
func (r *BitReader) BitsRemaining() int {
	return len(r.data)*8 - r.pos
}

// BitWriter accumulates bits most-significant-bit first into a byte slice.
type BitWriter struct {
	buf     []byte
	cur     byte
	curBits int
}

// WriteBits appends the low n bits of v.
func (w *BitWriter) WriteBits(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		bit := byte((v >> uint(i)) & 1)
		w.cur = w.cur<<1 | bit
		w.curBits++
		if w.curBits == 8 {
			w.buf = append(w.buf, w.cur)
			w.cur = 0
			w.curBits = 0
		}
	}
}

// Bytes flushes any partial byte (zero-padded on the right) and returns the
// accumulated buffer.
func (w *BitWriter) Bytes() []byte {
	if w.curBits > 0 {
		w.buf = append(w.buf, w.cur<<uint(8-w.curBits))
		w.cur = 0
		w.curBits = 0
	}
	return w.buf
}
