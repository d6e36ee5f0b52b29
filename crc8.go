package eeprom

import "github.com/sigurn/crc8"

// crcTable is the CRC-8 table used by every record in the format:
// polynomial 0x07, initial value 0x00, no input/output reflection, no
// XOR-out. This is the sigurn/crc8 CRC8 preset, and matches the
// parameters baked into the reference crcmod invocation
// ('crc-8', poly 0x107, non-reverse, init 0x00, xorout 0x00, check
// 0xF4) that generated the original C implementation.
var crcTable = crc8.MakeTable(crc8.CRC8)

// CRC computes the CRC-8 of b per §4.1.
func CRC(b []byte) byte {
	return crc8.Checksum(b, crcTable)
}

// CRCExcluding computes the CRC-8 over b with the byte at index
// exclude removed, without allocating a copy: it folds the prefix up
// to exclude and the suffix after it into one running checksum. Every
// record CRC in the format (§4.1) uses this form, since a record's
// crc8 field must never cover itself.
func CRCExcluding(b []byte, exclude int) byte {
	crc := crc8.Init(crc8.CRC8)
	crc = crc8.Update(crc, b[:exclude], crcTable)
	crc = crc8.Update(crc, b[exclude+1:], crcTable)
	return crc8.Complete(crc, crc8.CRC8)
}
