package atom

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"hdmi2usb.tv/tofe/eeprom"
)

// EncodeVarInt encodes v as a little-endian unsigned variable-width
// integer, 0..8 bytes (spec §4.3): the minimal byte count, with no
// trailing (most-significant) zero byte except for the value 0, which
// encodes as zero bytes.
func EncodeVarInt(v uint64) []byte {
	if v == 0 {
		return nil
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)

	n := 8
	for n > 0 && buf[n-1] == 0 {
		n--
	}
	return buf[:n]
}

// DecodeVarInt decodes a little-endian variable-width integer. It
// rejects payloads longer than 8 bytes and payloads carrying a
// superfluous high zero byte (spec §8's "minimal var-int" property).
func DecodeVarInt(payload []byte) (uint64, error) {
	if len(payload) > 8 {
		return 0, errors.Wrapf(eeprom.ErrMalformedPayload, "var-int: length %d exceeds 8", len(payload))
	}
	if len(payload) > 0 && payload[len(payload)-1] == 0 {
		return 0, errors.Wrap(eeprom.ErrMalformedPayload, "var-int: superfluous high zero byte")
	}

	var buf [8]byte
	copy(buf[:], payload)
	return binary.LittleEndian.Uint64(buf[:]), nil
}
