/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel error kinds surfaced by the modem core, as
  described by the error handling design: no kind is retried within the
  core, and callers distinguish them with errors.Is.

AUTHOR
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package modemerr defines the sentinel error kinds shared across the modem
// core's packages (fec, fsk, syncsig, fountain, standard).
package modemerr

import "github.com/pkg/errors"

// Error kinds surfaced to callers of the core API. None are retried within
// the core; the fountain decoder is the only layer that distinguishes
// transient (ErrNotYetDecodable) from terminal failures.
var (
	ErrPayloadTooLarge       = errors.New("modem: payload is empty or exceeds 200 bytes")
	ErrNoPreamble            = errors.New("modem: preamble not found")
	ErrInsufficientSamples   = errors.New("modem: insufficient samples to form a symbol window")
	ErrHeaderCrc             = errors.New("modem: frame header CRC-8 mismatch")
	ErrInvalidLength         = errors.New("modem: frame header declares an invalid payload length")
	ErrFecUnrecoverable      = errors.New("modem: Reed-Solomon decode could not recover the coded block")
	ErrFountainTimeout       = errors.New("modem: fountain decode timed out before the block set became resolvable")
	ErrFountainUnrecoverable = errors.New("modem: fountain decode matrix is rank-deficient at timeout")
	ErrNotYetDecodable       = errors.New("modem: fountain decoder does not yet hold enough independent packets")
)
