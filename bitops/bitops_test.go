/*
NAME
  bitops_test.go

AUTHOR
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package bitops

import "testing"

func TestUint24BERoundTrip(t *testing.T) {
	vals := []uint32{0, 1, 0xABCDEF, 0xFFFFFF}
	for _, v := range vals {
		b := make([]byte, 3)
		PutUint24BE(b, v)
		got := Uint24BE(b)
		if got != v {
			t.Errorf("Uint24BE(PutUint24BE(%d)) = %d", v, got)
		}
	}
}

func TestChunkBytesPadsLastChunk(t *testing.T) {
	chunks := ChunkBytes([]byte{1, 2, 3, 4, 5}, 2)
	want := [][]byte{{1, 2}, {3, 4}, {5, 0}}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if chunks[i][j] != want[i][j] {
				t.Errorf("chunk %d = %v, want %v", i, chunks[i], want[i])
			}
		}
	}
}

func TestBitReaderWriterRoundTrip(t *testing.T) {
	w := &BitWriter{}
	w.WriteBits(0b101, 3)
	w.WriteBits(0b11110000, 8)
	w.WriteBits(0b1, 1)
	data := w.Bytes()

	r := NewBitReader(data)
	v, err := r.ReadBits(3)
	if err != nil || v != 0b101 {
		t.Fatalf("first read = %v, %v; want 0b101, nil", v, err)
	}
	v, err = r.ReadBits(8)
	if err != nil || v != 0b11110000 {
		t.Fatalf("second read = %v, %v; want 0b11110000, nil", v, err)
	}
	v, err = r.ReadBits(1)
	if err != nil || v != 1 {
		t.Fatalf("third read = %v, %v; want 1, nil", v, err)
	}
}

func TestBitReaderErrorsPastEnd(t *testing.T) {
	r := NewBitReader([]byte{0xFF})
	if _, err := r.ReadBits(9); err == nil {
		t.Error("expected error reading past end of buffer")
	}
}
