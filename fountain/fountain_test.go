/*
NAME
  fountain_test.go

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
	"bytes"
	"math/rand"
	"testing"

	"github.com/ausocean/modem/fsk"
	"github.com/ausocean/modem/modemerr"
	"github.com/ausocean/modem/syncsig"
)

func testPayload(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i*31 + 7)
	}
	return p
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, l := range []int{1, 11, 100, 200} {
		payload := testPayload(l)
		codec := NewCodec(fsk.Fastest, nil)
		pcm, err := codec.Encode(payload, 0, DefaultBlockSize, DefaultRepairRatio)
		if err != nil {
			t.Fatalf("len %d: Encode: %v", l, err)
		}
		got, err := codec.Decode(pcm, 0, DefaultBlockSize)
		if err != nil {
			t.Fatalf("len %d: Decode: %v", l, err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("len %d: got %v, want %v", l, got, payload)
		}
	}
}

func TestDecoderOrderIndependence(t *testing.T) {
	payload := testPayload(60)
	enc, err := NewEncoder(payload, DefaultBlockSize)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	numRepair := enc.NumRepair(DefaultRepairRatio)
	total := enc.K() + numRepair
	var pcms [][]float64
	for i := 0; i < total; i++ {
		pcms = append(pcms, modulateBytes(enc.NextPacket().Encode(), fsk.Fastest))
	}

	rng := rand.New(rand.NewSource(3))
	rng.Shuffle(len(pcms), func(i, j int) { pcms[i], pcms[j] = pcms[j], pcms[i] })

	dec := NewDecoder(DefaultBlockSize, fsk.Fastest, nil)
	dec.FeedChunk(syncsig.Whistle)
	for _, pcm := range pcms {
		dec.FeedChunk(pcm)
	}

	got, err := dec.TryDecode()
	if err != nil {
		t.Fatalf("TryDecode: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %v, want %v", got, payload)
	}
}

func TestDecoderTolerates30PercentPacketLoss(t *testing.T) {
	payload := testPayload(150)
	enc, err := NewEncoder(payload, DefaultBlockSize)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	total := enc.K() + enc.NumRepair(1.0)
	var wires [][]byte
	for i := 0; i < total; i++ {
		wires = append(wires, enc.NextPacket().Encode())
	}

	rng := rand.New(rand.NewSource(4))
	dec := NewDecoder(DefaultBlockSize, fsk.Fastest, nil)
	dec.FeedChunk(syncsig.Whistle)
	dropped := 0
	for _, wire := range wires {
		if rng.Float64() < 0.3 {
			dropped++
			continue
		}
		dec.FeedChunk(modulateBytes(wire, fsk.Fastest))
	}
	if dropped == 0 {
		t.Fatal("test did not drop any packets")
	}

	got, err := dec.TryDecode()
	if err != nil {
		t.Fatalf("TryDecode after %d/%d dropped: %v", dropped, total, err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %v, want %v", got, payload)
	}
	if dec.Stats().FailedBlocks != 0 {
		t.Fatalf("FailedBlocks = %d, want 0 (dropped packets are never received, not corrupt)", dec.Stats().FailedBlocks)
	}
	if dec.Stats().DecodedBlocks < 4 {
		t.Fatalf("DecodedBlocks = %d, want >= 4", dec.Stats().DecodedBlocks)
	}
}

func TestDecoderCountsCorruptPacketsAsFailed(t *testing.T) {
	payload := testPayload(80)
	enc, err := NewEncoder(payload, DefaultBlockSize)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	total := enc.K() + enc.NumRepair(1.0)
	dec := NewDecoder(DefaultBlockSize, fsk.Fastest, nil)
	dec.FeedChunk(syncsig.Whistle)
	for i := 0; i < total; i++ {
		wire := enc.NextPacket().Encode()
		if i == 1 {
			wire[0] ^= 0xFF // corrupt the sbn/K byte, guaranteed CRC mismatch
		}
		dec.FeedChunk(modulateBytes(wire, fsk.Fastest))
	}

	got, err := dec.TryDecode()
	if err != nil {
		t.Fatalf("TryDecode: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %v, want %v", got, payload)
	}
	if dec.Stats().FailedBlocks == 0 {
		t.Fatal("FailedBlocks = 0, want at least the corrupted packet counted")
	}
}

func TestDecodeNotYetDecodableMapsToTimeout(t *testing.T) {
	payload := testPayload(100)
	codec := NewCodec(fsk.Fastest, nil)
	pcm, err := codec.Encode(payload, 0, DefaultBlockSize, DefaultRepairRatio)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Truncate to well short of a full block set: no packets beyond the
	// preamble and first couple of symbols can be received.
	short := pcm[:len(pcm)/10]
	if _, err := codec.Decode(short, 0, DefaultBlockSize); err != modemerr.ErrFountainTimeout {
		t.Fatalf("err = %v, want ErrFountainTimeout", err)
	}
}

func TestPayloadTooLarge(t *testing.T) {
	_, err := NewEncoder(make([]byte, 201), DefaultBlockSize)
	if err != modemerr.ErrPayloadTooLarge {
		t.Fatalf("err = %v, want ErrPayloadTooLarge", err)
	}
}

func TestStreamEmitsPreambleOnceThenPackets(t *testing.T) {
	payload := testPayload(40)
	codec := NewCodec(fsk.Fastest, nil)
	stream, err := codec.StartFountainStream(payload, DefaultBlockSize)
	if err != nil {
		t.Fatalf("StartFountainStream: %v", err)
	}

	first := stream.NextStreamBlock()
	second := stream.NextStreamBlock()
	if len(first) <= len(second) {
		t.Fatalf("first block len %d should exceed second block len %d (whistle preamble)", len(first), len(second))
	}

	stream.StopStreaming()
	if got := stream.NextStreamBlock(); got != nil {
		t.Fatalf("NextStreamBlock after StopStreaming = %v, want nil", got)
	}
}

func TestPacketRoundTrip(t *testing.T) {
	p := Packet{K: 7, ESI: 1234, First: true, Payload: []byte{1, 2, 3, 4}}
	wire := p.Encode()
	got, err := DecodePacket(wire)
	if err != nil {
		t.Fatalf("DecodePacket: %v", err)
	}
	if got.K != p.K || got.ESI != p.ESI || got.First != p.First || !bytes.Equal(got.Payload, p.Payload) {
		t.Fatalf("got %+v, want %+v", got, p)
	}
}

func TestPacketCorruptionDetected(t *testing.T) {
	p := Packet{K: 5, ESI: 1, Payload: []byte{9, 9, 9}}
	wire := p.Encode()
	wire[len(wire)-1] ^= 0xFF
	if _, err := DecodePacket(wire); err != modemerr.ErrHeaderCrc {
		t.Fatalf("err = %v, want ErrHeaderCrc", err)
	}
}
