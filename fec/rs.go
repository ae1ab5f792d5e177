/*
NAME
  rs.go

DESCRIPTION
  rs.go implements the RS(223,255) codec over GF(2^8) by wrapping
  github.com/Picocrypt/infectious's byte-level Reed-Solomon FEC, correcting
  up to 16 byte errors at unknown positions (half of the 32 parity bytes).
  The shortening (only a header+payload prefix of the 223 data bytes is
  meaningful, the rest known zero) is layered on top, in header.go.

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
	"github.com/Picocrypt/infectious"
	"github.com/pkg/errors"
)

// DataLen and ParityLen are the shortened RS(223,255) parameters fixed by
// 223 data bytes (of which only the first few hold header+payload, the
// rest are known zero padding), 32 parity bytes, 255-byte coded block.
const (
	DataLen   = 223
	ParityLen = 32
	BlockLen  = DataLen + ParityLen

	// MaxCorrectableErrors is the maximum number of byte errors the codec can
	// correct at unknown locations (half of ParityLen).
	MaxCorrectableErrors = ParityLen / 2
)

var errTooManyErrors = errors.New("fec: too many byte errors to correct")

// RSCodec is a reusable RS(223,255) encoder/decoder. The zero value is not
// usable; construct with NewRSCodec.
type RSCodec struct {
	fec *infectious.FEC
}

// NewRSCodec builds the RS(223,255) codec.
func NewRSCodec() *RSCodec {
	f, err := infectious.NewFEC(DataLen, BlockLen)
	if err != nil {
		// DataLen and BlockLen are fixed constants known to be valid FEC
		// parameters; NewFEC can only fail for required > total or
		// non-positive inputs, neither of which applies here.
		panic(err)
	}
	return &RSCodec{fec: f}
}

// Encode appends 32 parity bytes to a 223-byte data vector, returning the
// 255-byte coded block.
func (c *RSCodec) Encode(data []byte) ([]byte, error) {
	if len(data) != DataLen {
		return nil, errors.Errorf("fec: data must be %d bytes, got %d", DataLen, len(data))
	}
	block := make([]byte, BlockLen)
	err := c.fec.Encode(data, func(s infectious.Share) {
		block[s.Number] = s.Data[0]
	})
	if err != nil {
		return nil, errors.Wrap(err, "fec: encode")
	}
	return block, nil
}

// Decode corrects up to MaxCorrectableErrors byte errors in a 255-byte
// coded block and returns the corrected 223-byte data vector along with
// the number of data bytes that were corrected (errors in the parity bytes
// are not counted). If the error pattern cannot be resolved
// within the code's correction capability, it returns errTooManyErrors.
func (c *RSCodec) Decode(block []byte) ([]byte, int, error) {
	if len(block) != BlockLen {
		return nil, 0, errors.Errorf("fec: block must be %d bytes, got %d", BlockLen, len(block))
	}

	shares := make([]infectious.Share, BlockLen)
	for i, b := range block {
		shares[i].Number = i
		shares[i].Data = []byte{b}
	}

	data, err := c.fec.Decode(nil, shares)
	if err != nil {
		return nil, 0, errTooManyErrors
	}

	errs := 0
	for i, d := range data {
		if d != block[i] {
			errs++
		}
	}
	return data, errs, nil
}
