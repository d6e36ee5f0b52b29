// Package atom implements the TLV payload codecs and type registry for
// TOFE atoms (spec §3, §4.3). An atom is a record with fixed prefix
// `{type: u8, length: u8, payload[length]}`; the high nibble of type
// selects the format family (and therefore the codec), the low nibble
// is the atom's index within that family.
package atom

import (
	"github.com/pkg/errors"

	"hdmi2usb.tv/tofe/eeprom"
)

// Family is the high nibble of an atom's type byte: it selects which
// payload codec decodes the atom.
type Family byte

const (
	FamilyString      Family = 0x0
	FamilyURL         Family = 0x1
	FamilyRelativeURL Family = 0x2
	FamilyTimestamp   Family = 0x3
	FamilyLicense     Family = 0x4
	FamilySizeOffset  Family = 0x5
)

// Type is an atom's type byte: the high nibble names the format
// family, the low nibble names the atom within that family.
type Type byte

// Family returns the format family t belongs to.
func (t Type) Family() Family {
	return Family(t >> 4)
}

// Known atom types (spec §3's "Known atom names" table). The numeric
// value is the wire contract; the Go name exists only for callers'
// convenience.
const (
	ProductVersion      Type = 0x01
	ProductSerial       Type = 0x02
	PartNumber          Type = 0x03
	PCBRevision         Type = 0x04
	FirmwareDescription Type = 0x05
	FirmwareRevision    Type = 0x06
	EEPROMPartNumber    Type = 0x07

	Designer       Type = 0x10
	Manufacturer   Type = 0x11
	ProductID      Type = 0x12
	AuxiliaryURL   Type = 0x13

	PCBRepository        Type = 0x20
	FirmwareRepository   Type = 0x21
	SampleCodeRepository Type = 0x22
	DocumentationSite    Type = 0x23

	PCBProductionBatch  Type = 0x30
	PCBPopulationBatch  Type = 0x31
	FirmwareProgramDate Type = 0x32

	PCBLicense      Type = 0x40
	FirmwareLicense Type = 0x41

	EEPROMTotalSize Type = 0x50
	VendorData      Type = 0x51
	TOFEData        Type = 0x52
	UserData        Type = 0x53
	GUID            Type = 0x54
	Hole            Type = 0x55
)

// definition is the compile-time metadata a known atom type carries:
// a name for diagnostics, and the family that determines how its
// payload is interpreted. Replaces the source format's runtime
// metaprogramming (spec §9) with one static table; there is no global
// mutable registry to mutate at runtime.
type definition struct {
	name   string
	family Family
}

var registry = map[Type]definition{
	ProductVersion:      {"ProductVersion", FamilyString},
	ProductSerial:       {"ProductSerial", FamilyString},
	PartNumber:          {"PartNumber", FamilyString},
	PCBRevision:         {"PCBRevision", FamilyString},
	FirmwareDescription: {"FirmwareDescription", FamilyString},
	FirmwareRevision:    {"FirmwareRevision", FamilyString},
	EEPROMPartNumber:    {"EEPROMPartNumber", FamilyString},

	Designer:     {"Designer", FamilyURL},
	Manufacturer: {"Manufacturer", FamilyURL},
	ProductID:    {"ProductID", FamilyURL},
	AuxiliaryURL: {"AuxiliaryURL", FamilyURL},

	PCBRepository:        {"PCBRepository", FamilyRelativeURL},
	FirmwareRepository:   {"FirmwareRepository", FamilyRelativeURL},
	SampleCodeRepository: {"SampleCodeRepository", FamilyRelativeURL},
	DocumentationSite:    {"DocumentationSite", FamilyRelativeURL},

	PCBProductionBatch:  {"PCBProductionBatch", FamilyTimestamp},
	PCBPopulationBatch:  {"PCBPopulationBatch", FamilyTimestamp},
	FirmwareProgramDate: {"FirmwareProgramDate", FamilyTimestamp},

	PCBLicense:      {"PCBLicense", FamilyLicense},
	FirmwareLicense: {"FirmwareLicense", FamilyLicense},

	EEPROMTotalSize: {"EEPROMTotalSize", FamilySizeOffset},
	VendorData:      {"VendorData", FamilySizeOffset},
	TOFEData:        {"TOFEData", FamilySizeOffset},
	UserData:        {"UserData", FamilySizeOffset},
	GUID:            {"GUID", FamilySizeOffset},
	Hole:            {"Hole", FamilySizeOffset},
}

// ErrUnknownType is returned by Name and FamilyOf for a type byte not
// in the registered set. It is the root package's eeprom.ErrUnknownType.
var ErrUnknownType = eeprom.ErrUnknownType

// Name returns the human-readable name of a known atom type.
func Name(t Type) (string, error) {
	d, ok := registry[t]
	if !ok {
		return "", errors.Wrapf(ErrUnknownType, "type 0x%02x", byte(t))
	}
	return d.name, nil
}

// FamilyOf returns the format family a known atom type belongs to.
// Unlike Type.Family (a pure bit-twiddle on the wire byte), FamilyOf
// additionally confirms the type is registered.
func FamilyOf(t Type) (Family, error) {
	d, ok := registry[t]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownType, "type 0x%02x", byte(t))
	}
	return d.family, nil
}

// Raw is the wire representation of an atom: a type byte and its
// payload bytes, with no interpretation applied. Container stores and
// walks atoms as Raw; the typed codecs in this package turn a Raw's
// payload into a Go value and back.
type Raw struct {
	Type    Type
	Payload []byte
}

// Bytes encodes a into its wire form: {type, length, payload...}.
// length is len(a.Payload), which must fit in a byte (spec §3 bounds
// an atom's payload to 0..255 bytes via the length field's width).
func (a Raw) Bytes() ([]byte, error) {
	if len(a.Payload) > 0xFF {
		return nil, errors.Errorf("atom: payload too long: %d bytes", len(a.Payload))
	}
	b := make([]byte, 2+len(a.Payload))
	b[0] = byte(a.Type)
	b[1] = byte(len(a.Payload))
	copy(b[2:], a.Payload)
	return b, nil
}
