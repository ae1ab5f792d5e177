/*
NAME
  standard_test.go

AUTHOR
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package standard

import (
	"bytes"
	"testing"

	"github.com/ausocean/modem/fsk"
	"github.com/ausocean/modem/modemerr"
)

func TestHelloWorldRoundTrip(t *testing.T) {
	c := NewCodec(nil)
	payload := []byte("Hello World")

	pcm, err := c.Encode(payload, fsk.Normal)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// N = 16000*(0.25 + 85*0.192 + 0.25) = 4000 + 85*3072 + 4000 = 269120.
	const wantSamples = 269120
	if len(pcm) != wantSamples {
		t.Fatalf("len(pcm) = %d, want %d", len(pcm), wantSamples)
	}

	got, err := c.Decode(pcm, fsk.Normal)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %q, want %q", got, payload)
	}
}

func TestRoundTripAllSpeedsAndLengths(t *testing.T) {
	c := NewCodec(nil)
	for _, speed := range []fsk.Speed{fsk.Normal, fsk.Fast, fsk.Fastest} {
		for _, l := range []int{1, 11, 100, 200} {
			payload := make([]byte, l)
			for i := range payload {
				payload[i] = byte(i*31 + 7)
			}
			pcm, err := c.Encode(payload, speed)
			if err != nil {
				t.Fatalf("speed %v len %d: Encode: %v", speed, l, err)
			}
			got, err := c.Decode(pcm, speed)
			if err != nil {
				t.Fatalf("speed %v len %d: Decode: %v", speed, l, err)
			}
			if !bytes.Equal(got, payload) {
				t.Fatalf("speed %v len %d: round trip mismatch", speed, l)
			}
		}
	}
}

func TestPayloadTooLarge(t *testing.T) {
	c := NewCodec(nil)
	_, err := c.Encode(make([]byte, 201), fsk.Normal)
	if err != modemerr.ErrPayloadTooLarge {
		t.Fatalf("err = %v, want ErrPayloadTooLarge", err)
	}
}

func TestDecodeNoPreambleOnSilence(t *testing.T) {
	c := NewCodec(nil)
	_, err := c.Decode(make([]float64, 10*16000), fsk.Normal)
	if err != modemerr.ErrNoPreamble {
		t.Fatalf("err = %v, want ErrNoPreamble", err)
	}
}

func TestDecodePreambleOnlyInsufficientOrUnrecoverable(t *testing.T) {
	c := NewCodec(nil)
	pcm, err := c.Encode([]byte("x"), fsk.Normal)
	if err != nil {
		t.Fatal(err)
	}
	preambleOnly := pcm[:4000]
	_, err = c.Decode(preambleOnly, fsk.Normal)
	if err != modemerr.ErrInsufficientSamples && err != modemerr.ErrFecUnrecoverable {
		t.Fatalf("err = %v, want ErrInsufficientSamples or ErrFecUnrecoverable", err)
	}
}
