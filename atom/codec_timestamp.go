package atom

import (
	"time"

	"github.com/pkg/errors"

	"hdmi2usb.tv/tofe/eeprom"
)

// Epoch is the TOFE timestamp epoch, 2015-01-01T00:00:00Z, as Unix
// seconds (spec §4.3).
const Epoch int64 = 1420070400

// EncodeTimestamp encodes a Unix-seconds timestamp as a
// FamilyTimestamp atom payload: a variable-width integer equal to
// seconds since Epoch. It fails if unixSeconds does not fall strictly after the
// epoch, per spec §4.3's "the encoded value must be strictly
// positive".
func EncodeTimestamp(unixSeconds int64) ([]byte, error) {
	if unixSeconds <= Epoch {
		return nil, errors.Wrapf(eeprom.ErrMalformedPayload,
			"timestamp: %d is not after epoch %d", unixSeconds, Epoch)
	}
	return EncodeVarInt(uint64(unixSeconds - Epoch)), nil
}

// DecodeTimestamp decodes a FamilyTimestamp atom payload into a
// Unix-seconds timestamp.
func DecodeTimestamp(payload []byte) (int64, error) {
	delta, err := DecodeVarInt(payload)
	if err != nil {
		return 0, errors.Wrap(err, "timestamp")
	}
	if delta == 0 {
		return 0, errors.Wrap(eeprom.ErrMalformedPayload, "timestamp: not strictly after epoch")
	}
	return Epoch + int64(delta), nil
}

// Time is a convenience wrapper returning DecodeTimestamp's result as
// a time.Time in UTC.
func Time(payload []byte) (time.Time, error) {
	secs, err := DecodeTimestamp(payload)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0).UTC(), nil
}
