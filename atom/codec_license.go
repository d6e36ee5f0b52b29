package atom

import "fmt"

// License is a FamilyLicense atom payload: one byte, bits 0..4 the
// license family and bits 5..7 the version within that family (spec
// §4.3). Per the design note on closed enums (spec §9), decoding never
// fails on an out-of-domain byte — License carries an explicit
// "unknown" fallback instead, so forward compatibility (a future
// revision adding a license family) doesn't break round-tripping
// already-known values.
type License byte

// Known license constants (spec §4.3's closed enumeration): each value
// packs a 5-bit family into the low bits and a 3-bit version into the
// high bits.
const (
	LicenseInvalid License = 0x00

	LicenseMIT License = License(1)

	licenseFamilyBSD                  = 2
	LicenseBSDSimple           License = License(licenseFamilyBSD)
	LicenseBSDNew              License = License(licenseFamilyBSD) | 1<<5
	LicenseISC                 License = License(licenseFamilyBSD) | 2<<5

	LicenseApacheV2 License = License(3)

	licenseFamilyGPL       = 4
	LicenseGPLv2   License = License(licenseFamilyGPL)
	LicenseGPLv3   License = License(licenseFamilyGPL) | 1<<5

	licenseFamilyLGPL       = 5
	LicenseLGPLv2_1 License = License(licenseFamilyLGPL)
	LicenseLGPLv3   License = License(licenseFamilyLGPL) | 1<<5

	LicenseCC0v1 License = License(6)

	licenseFamilyCCBY       = 7
	LicenseCCBYv1_0 License = License(licenseFamilyCCBY)
	LicenseCCBYv2_0 License = License(licenseFamilyCCBY) | 1<<5
	LicenseCCBYv3_0 License = License(licenseFamilyCCBY) | 2<<5
	LicenseCCBYv4_0 License = License(licenseFamilyCCBY) | 3<<5

	licenseFamilyCCBYSA       = 8
	LicenseCCBYSAv1_0 License = License(licenseFamilyCCBYSA)
	LicenseCCBYSAv2_0 License = License(licenseFamilyCCBYSA) | 1<<5
	LicenseCCBYSAv3_0 License = License(licenseFamilyCCBYSA) | 2<<5
	LicenseCCBYSAv4_0 License = License(licenseFamilyCCBYSA) | 3<<5

	LicenseTAPRv1_0 License = License(9)

	licenseFamilyCERN       = 10
	LicenseCERNv1_1 License = License(licenseFamilyCERN)
	LicenseCERNv1_2 License = License(licenseFamilyCERN) | 1<<5

	LicenseProprietary License = 0xFF
)

var licenseNames = map[License]string{
	LicenseInvalid:     "Invalid",
	LicenseMIT:         "MIT",
	LicenseBSDSimple:   "BSD-simple",
	LicenseBSDNew:      "BSD-new",
	LicenseISC:         "ISC",
	LicenseApacheV2:    "Apache-v2",
	LicenseGPLv2:       "GPL-v2",
	LicenseGPLv3:       "GPL-v3",
	LicenseLGPLv2_1:    "LGPL-v2.1",
	LicenseLGPLv3:      "LGPL-v3",
	LicenseCC0v1:       "CC0-v1",
	LicenseCCBYv1_0:    "CC-BY-v1.0",
	LicenseCCBYv2_0:    "CC-BY-v2.0",
	LicenseCCBYv3_0:    "CC-BY-v3.0",
	LicenseCCBYv4_0:    "CC-BY-v4.0",
	LicenseCCBYSAv1_0:  "CC-BY-SA-v1.0",
	LicenseCCBYSAv2_0:  "CC-BY-SA-v2.0",
	LicenseCCBYSAv3_0:  "CC-BY-SA-v3.0",
	LicenseCCBYSAv4_0:  "CC-BY-SA-v4.0",
	LicenseTAPRv1_0:    "TAPR-v1.0",
	LicenseCERNv1_1:    "CERN-v1.1",
	LicenseCERNv1_2:    "CERN-v1.2",
	LicenseProprietary: "Proprietary",
}

// Known reports whether l is one of the closed set of recognized
// licenses.
func (l License) Known() bool {
	_, ok := licenseNames[l]
	return ok
}

// String returns the license's human-readable name, or
// "Unknown(0xHH)" for a byte value outside the closed set.
func (l License) String() string {
	if name, ok := licenseNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%02x)", byte(l))
}

// EncodeLicense encodes l as a one-byte FamilyLicense atom payload.
func EncodeLicense(l License) []byte {
	return []byte{byte(l)}
}

// DecodeLicense decodes a one-byte FamilyLicense atom payload. It
// never returns an error: a byte outside the closed set decodes to
// the Unknown fallback (see License's doc comment), and a payload
// whose length is not exactly 1 decodes as LicenseInvalid.
func DecodeLicense(payload []byte) License {
	if len(payload) != 1 {
		return LicenseInvalid
	}
	return License(payload[0])
}
