// Package eeprom implements the core binary format shared by TOFE
// ("Tim's Open Factor Expansion") board-identification EEPROMs: a
// CRC-protected, sentinel-delimited TLV ("atom") record stream, and —
// for boards whose EEPROM is shared with an FX2 USB controller — the
// composite image that interleaves that stream with the controller's
// segmented boot descriptor.
//
// The package is organized the way the format itself is layered: this
// root package holds the CRC-8 engine and the dynamic-length record
// primitive that every variable-sized structure in the format is built
// from, plus the error taxonomy shared by every layer above it. The
// atom payload codecs live in the atom subpackage, the atom container
// in container, the vendor segment chain in fx2, and the composite
// image assembler in composite.
package eeprom

import "github.com/pkg/errors"

// Sentinel errors identifying the failure kinds in the format's error
// taxonomy. Wrap these with errors.Wrap/Wrapf to name the offending
// field; callers match the kind with errors.Is.
var (
	// ErrCapacityExceeded is returned when a write would grow a record
	// or image past its backing capacity.
	ErrCapacityExceeded = errors.New("eeprom: capacity exceeded")

	// ErrOutOfOrder is returned by Container.Append when the appended
	// atom's type is less than the preceding atom's type.
	ErrOutOfOrder = errors.New("eeprom: atom type out of order")

	// ErrDanglingReference is returned when a relative-URL atom's
	// parent_index is absent, not yet appended, or not an absolute URL.
	ErrDanglingReference = errors.New("eeprom: dangling relative-url reference")

	// ErrBadMagic is returned when a magic or reversed-magic sentinel
	// does not match what was expected.
	ErrBadMagic = errors.New("eeprom: bad magic")

	// ErrBadCRC is returned when a record's crc8 field disagrees with
	// the computed checksum.
	ErrBadCRC = errors.New("eeprom: bad crc8")

	// ErrBadVersion is returned when a format's version byte is not one
	// this package recognizes.
	ErrBadVersion = errors.New("eeprom: bad version")

	// ErrUnknownType is returned when an atom's type byte is not in the
	// registered set of known atom types.
	ErrUnknownType = errors.New("eeprom: unknown atom type")

	// ErrMalformedPayload is returned when a payload's bytes are
	// inconsistent with its codec's rules (bad size/offset width, a
	// timestamp at or before the epoch, a non-minimal var-int, and so
	// on). License bytes outside the known set are not an error: they
	// decode to an Unknown fallback.
	ErrMalformedPayload = errors.New("eeprom: malformed payload")

	// ErrBadSegmentChain is returned when a composite image's FX2
	// segment lengths do not tile the expected region, or no terminator
	// segment is found.
	ErrBadSegmentChain = errors.New("eeprom: bad fx2 segment chain")

	// ErrIndexOutOfBounds is returned by Container.Get for an atom index
	// at or past the container's atom count.
	ErrIndexOutOfBounds = errors.New("eeprom: atom index out of bounds")
)
