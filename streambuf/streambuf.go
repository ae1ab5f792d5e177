/*
NAME
  streambuf.go

DESCRIPTION
  streambuf.go implements a bounded, FIFO ring buffer of float64 PCM samples,
  used by the sync-signal detectors and the fountain decoder's incremental
  feedChunk to hold a rolling window of recently-arrived, un-demodulated
  audio.

AUTHOR
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package streambuf provides a bounded ring buffer of PCM samples for
// incremental, streaming demodulation.
package streambuf

// DefaultCapacity is five seconds of audio at the modem's 16kHz sample rate,
// for streaming buffer sizing.
const DefaultCapacity = 80000

// Buffer is a bounded FIFO of float64 samples. Once full, appending more
// samples evicts the oldest ones. The zero value is not usable; construct
// with New.
//
// Buffer also tracks the absolute sample index of element 0, so that
// detectors operating on a Buffer can report detection offsets in terms of
// the overall sample stream rather than the buffer's internal window.
type Buffer struct {
	data     []float64
	capacity int
	origin   int64 // absolute stream index of data[0]
}

// New returns an empty Buffer with the given capacity in samples.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{data: make([]float64, 0, capacity), capacity: capacity}
}

// Write appends samples to b, evicting the oldest samples if b would exceed
// its capacity. It never errors and never blocks: Buffer is not a channel
// and has no back-pressure semantics.
func (b *Buffer) Write(samples []float64) {
	streamEnd := b.origin + int64(len(b.data)) + int64(len(samples))

	if len(samples) >= b.capacity {
		// The new chunk alone fills (or overflows) the buffer.
		b.data = append(b.data[:0], samples[len(samples)-b.capacity:]...)
		b.origin = streamEnd - int64(b.capacity)
		return
	}

	overflow := len(b.data) + len(samples) - b.capacity
	if overflow > 0 {
		b.data = append(b.data[:0], b.data[overflow:]...)
		b.origin += int64(overflow)
	}
	b.data = append(b.data, samples...)
}

// Len returns the number of samples currently held.
func (b *Buffer) Len() int { return len(b.data) }

// Samples returns the buffer's current contents. The returned slice aliases
// b's internal storage and is invalidated by the next Write.
func (b *Buffer) Samples() []float64 { return b.data }

// Origin returns the absolute stream index of the first sample currently in
// the buffer.
func (b *Buffer) Origin() int64 { return b.origin }

// Clear empties the buffer and resets its origin to the given absolute
// stream index, per the detector state machines' clear() requirement.
func (b *Buffer) Clear(origin int64) {
	b.data = b.data[:0]
	b.origin = origin
}

// Discard drops the oldest n samples from the buffer, advancing its origin.
// If n exceeds Len, the buffer is emptied.
func (b *Buffer) Discard(n int) {
	if n >= len(b.data) {
		b.origin += int64(len(b.data))
		b.data = b.data[:0]
		return
	}
	b.data = append(b.data[:0], b.data[n:]...)
	b.origin += int64(n)
}
