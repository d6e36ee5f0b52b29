package atom

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"hdmi2usb.tv/tofe/eeprom"
)

// EncodeSizeOffset encodes a FamilySizeOffset atom payload: an
// (offset, size) pair packed at the narrowest uniform width that
// holds both values (spec §4.3) — 2 bytes when both fit in a byte, 4
// when both fit in uint16, 8 otherwise. offset and size are always
// encoded at the same width, even when one of the two would fit in a
// narrower type on its own.
func EncodeSizeOffset(offset, size uint64) []byte {
	switch {
	case offset <= 0xFF && size <= 0xFF:
		return []byte{byte(offset), byte(size)}
	case offset <= 0xFFFF && size <= 0xFFFF:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint16(buf[0:2], uint16(offset))
		binary.LittleEndian.PutUint16(buf[2:4], uint16(size))
		return buf
	default:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint32(buf[0:4], uint32(offset))
		binary.LittleEndian.PutUint32(buf[4:8], uint32(size))
		return buf
	}
}

// DecodeSizeOffset decodes a FamilySizeOffset atom payload. The
// payload length selects the field width: 2 bytes for a pair of u8,
// 4 for a pair of u16, 8 for a pair of u32. Any other length is
// malformed.
func DecodeSizeOffset(payload []byte) (offset, size uint64, err error) {
	switch len(payload) {
	case 2:
		return uint64(payload[0]), uint64(payload[1]), nil
	case 4:
		return uint64(binary.LittleEndian.Uint16(payload[0:2])),
			uint64(binary.LittleEndian.Uint16(payload[2:4])), nil
	case 8:
		return uint64(binary.LittleEndian.Uint32(payload[0:4])),
			uint64(binary.LittleEndian.Uint32(payload[4:8])), nil
	default:
		return 0, 0, errors.Wrapf(eeprom.ErrMalformedPayload,
			"size/offset: length %d not in {2,4,8}", len(payload))
	}
}
