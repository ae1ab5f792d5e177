/*
NAME
  crc.go

DESCRIPTION
  crc.go implements the CRC-8 used to protect the frame header and the
  CRC-16/CCITT-FALSE used to protect fountain packets.

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

// CRC8 computes the CRC-8/SMBUS checksum (poly 0x07, init 0x00, no
// reflection) of data. This is the "CRC-8 (header)" referenced throughout
// the frame codec.
func CRC8(data []byte) byte {
	const poly = 0x07
	var crc byte
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// crc16Table is the lookup table for CRC-16/CCITT-FALSE (poly 0x1021).
var crc16Table = func() [256]uint16 {
	const poly = 0x1021
	var t [256]uint16
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return t
}()

// CRC16 computes CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF, no
// reflection, no final XOR) over data, as used by fountain packet
// trailers.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc = crc<<8 ^ crc16Table[byte(crc>>8)^b]
	}
	return crc
}
