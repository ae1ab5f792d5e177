/*
DESCRIPTION
  modemctl is a command-line tool for encoding a file to a modulated WAV
  file, and decoding a modulated WAV file back to the original bytes, using
  the standard and fountain modem modes.

AUTHOR
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package modemctl is a command-line tool for encoding and decoding files
// through the acoustic modem.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ausocean/modem/codec/pcm"
	"github.com/ausocean/modem/codec/wav"
	"github.com/ausocean/modem/fountain"
	"github.com/ausocean/modem/fsk"
	"github.com/ausocean/modem/standard"
	"github.com/ausocean/utils/logging"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logging configuration.
const (
	logPath      = "modemctl.log"
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
)

const modemSampleRate = fsk.SampleRate

// bandpassLow and bandpassHigh bound the FSK tone grid (BaseFreq through
// BaseFreq+BinSpacing*(NumBins-1)), used to reject out-of-band noise before
// Goertzel demodulation.
const (
	bandpassLow  = fsk.BaseFreq
	bandpassHigh = fsk.BaseFreq + fsk.BinSpacing*(fsk.NumBins-1)
	bandpassTaps = 128
)

func main() {
	logVerbosity := flag.Int("verbosity", int(logging.Info), "log verbosity (0=Debug .. 4=Fatal)")
	mode := flag.String("mode", "standard", "modem mode: standard or fountain")
	speedFlag := flag.String("speed", "Normal", "FSK speed: Normal, Fast, or Fastest")
	blockSize := flag.Int("blocksize", fountain.DefaultBlockSize, "fountain source block size, in bytes")
	repairRatio := flag.Float64("repairratio", fountain.DefaultRepairRatio, "fountain repair packet ratio")
	timeoutSec := flag.Float64("timeout", 0, "fountain timeout in seconds (0: use repairratio instead)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: modemctl [flags] <encode|decode> <input> <output>")
		os.Exit(1)
	}
	op, inPath, outPath := args[0], args[1], args[2]

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(int8(*logVerbosity), fileLog, false)

	speed, err := fsk.SpeedFromString(*speedFlag)
	if err != nil {
		log.Fatal("invalid speed", "error", err)
	}

	switch op {
	case "encode":
		err = runEncode(inPath, outPath, *mode, speed, *blockSize, *repairRatio, *timeoutSec, log)
	case "decode":
		err = runDecode(inPath, outPath, *mode, speed, *blockSize, *timeoutSec, log)
	default:
		fmt.Fprintf(os.Stderr, "unknown operation %q: want encode or decode\n", op)
		os.Exit(1)
	}
	if err != nil {
		log.Error("operation failed", "op", op, "error", err)
		fmt.Fprintf(os.Stderr, "modemctl: %v\n", err)
		os.Exit(1)
	}
}

func runEncode(inPath, outPath, mode string, speed fsk.Speed, blockSize int, repairRatio, timeoutSec float64, log logging.Logger) error {
	payload, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var samples []float64
	switch mode {
	case "standard":
		codec := standard.NewCodec(log)
		samples, err = codec.Encode(payload, speed)
	case "fountain":
		codec := fountain.NewCodec(speed, log)
		samples, err = codec.Encode(payload, timeoutSec, blockSize, repairRatio)
	default:
		return fmt.Errorf("unknown mode %q: want standard or fountain", mode)
	}
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	pcmBytes, err := pcm.FloatsToBytes(samples)
	if err != nil {
		return fmt.Errorf("converting to PCM: %w", err)
	}

	w := &wav.WAV{Metadata: wav.Metadata{
		AudioFormat: wav.PCMFormat,
		Channels:    1,
		SampleRate:  modemSampleRate,
		BitDepth:    16,
	}}
	if _, err := w.Write(pcmBytes); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}

	if err := os.WriteFile(outPath, w.Audio, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	log.Info("encoded", "bytes", len(payload), "samples", len(samples))
	return nil
}

func runDecode(inPath, outPath, mode string, speed fsk.Speed, blockSize int, timeoutSec float64, log logging.Logger) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	raw, err := wav.Read(f)
	if err != nil {
		return fmt.Errorf("decoding wav: %w", err)
	}

	buf := pcm.Buffer{
		Format: pcm.BufferFormat{SFormat: pcm.S16_LE, Rate: uint(raw.Metadata.SampleRate), Channels: uint(raw.Metadata.Channels)},
		Data:   raw.Audio,
	}
	if buf.Format.Channels > 1 {
		buf, err = pcm.StereoToMono(buf)
		if err != nil {
			return fmt.Errorf("converting to mono: %w", err)
		}
	}
	if buf.Format.Rate != modemSampleRate {
		buf, err = pcm.Resample(buf, modemSampleRate)
		if err != nil {
			return fmt.Errorf("resampling: %w", err)
		}
	}

	passband, err := pcm.NewBandPass(bandpassLow, bandpassHigh, buf.Format, bandpassTaps)
	if err != nil {
		return fmt.Errorf("building bandpass filter: %w", err)
	}
	buf.Data, err = passband.Apply(buf)
	if err != nil {
		return fmt.Errorf("applying bandpass filter: %w", err)
	}

	samples, err := pcm.BytesToFloats(buf.Data)
	if err != nil {
		return fmt.Errorf("converting from PCM: %w", err)
	}

	var payload []byte
	switch mode {
	case "standard":
		codec := standard.NewCodec(log)
		payload, err = codec.Decode(samples, speed)
	case "fountain":
		codec := fountain.NewCodec(speed, log)
		payload, err = codec.Decode(samples, timeoutSec, blockSize)
	default:
		return fmt.Errorf("unknown mode %q: want standard or fountain", mode)
	}
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	if err := os.WriteFile(outPath, payload, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	log.Info("decoded", "bytes", len(payload))
	return nil
}
