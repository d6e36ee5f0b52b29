package atom

import (
	"bytes"
	"testing"
)

func TestRawBytes(t *testing.T) {
	a := Raw{Type: ProductVersion, Payload: []byte("1.0")}
	b, err := a.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	want := []byte{0x01, 0x03, '1', '.', '0'}
	if !bytes.Equal(b, want) {
		t.Fatalf("Bytes() = % x, want % x", b, want)
	}
}

func TestRawBytesPayloadTooLong(t *testing.T) {
	a := Raw{Type: ProductVersion, Payload: make([]byte, 256)}
	if _, err := a.Bytes(); err == nil {
		t.Fatal("expected error for 256-byte payload")
	}
}

func TestNameAndFamilyOf(t *testing.T) {
	name, err := Name(Manufacturer)
	if err != nil || name != "Manufacturer" {
		t.Fatalf("Name(Manufacturer) = %q, %v", name, err)
	}
	fam, err := FamilyOf(Manufacturer)
	if err != nil || fam != FamilyURL {
		t.Fatalf("FamilyOf(Manufacturer) = %v, %v", fam, err)
	}
	if _, err := Name(Type(0xFE)); err == nil {
		t.Fatal("expected ErrUnknownType for unregistered type")
	}
}

func TestTypeFamily(t *testing.T) {
	if GUID.Family() != FamilySizeOffset {
		t.Fatalf("GUID.Family() = %v, want FamilySizeOffset", GUID.Family())
	}
	if PCBRepository.Family() != FamilyRelativeURL {
		t.Fatalf("PCBRepository.Family() = %v, want FamilyRelativeURL", PCBRepository.Family())
	}
}

func TestStringCodecRoundTrip(t *testing.T) {
	want := "tofe-board-v2"
	got := DecodeString(EncodeString(want))
	if got != want {
		t.Fatalf("round trip = %q, want %q", got, want)
	}
}

func TestURLCodec(t *testing.T) {
	payload := EncodeURL("https://hdmi2usb.tv")
	if string(payload) != "hdmi2usb.tv" {
		t.Fatalf("EncodeURL stripped scheme wrong: %q", payload)
	}
	if got := DecodeURL(payload); got != "https://hdmi2usb.tv" {
		t.Fatalf("DecodeURL = %q", got)
	}
}

func TestRelativeURLCodec(t *testing.T) {
	payload := EncodeRelativeURL(0x11, "project/pcb")
	idx, body, err := DecodeRelativeURL(payload)
	if err != nil {
		t.Fatalf("DecodeRelativeURL: %v", err)
	}
	if idx != 0x11 || body != "project/pcb" {
		t.Fatalf("got idx=%d body=%q", idx, body)
	}
	if got := ResolveRelativeURL("https://hdmi2usb.tv", body); got != "https://hdmi2usb.tv/project/pcb" {
		t.Fatalf("ResolveRelativeURL = %q", got)
	}
}

func TestRelativeURLCodecEmptyPayload(t *testing.T) {
	if _, _, err := DecodeRelativeURL(nil); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestVarIntMinimalEncoding(t *testing.T) {
	cases := []struct {
		v    uint64
		want []byte
	}{
		{0, nil},
		{1, []byte{0x01}},
		{0xFF, []byte{0xFF}},
		{0x100, []byte{0x00, 0x01}},
		{1000000, []byte{0x40, 0x42, 0x0F}},
	}
	for _, c := range cases {
		got := EncodeVarInt(c.v)
		if !bytes.Equal(got, c.want) {
			t.Errorf("EncodeVarInt(%d) = % x, want % x", c.v, got, c.want)
		}
		back, err := DecodeVarInt(got)
		if err != nil {
			t.Errorf("DecodeVarInt(% x): %v", got, err)
		}
		if back != c.v {
			t.Errorf("round trip %d -> % x -> %d", c.v, got, back)
		}
	}
}

func TestVarIntRejectsSuperfluousHighZero(t *testing.T) {
	if _, err := DecodeVarInt([]byte{0x01, 0x00}); err == nil {
		t.Fatal("expected error for superfluous high zero byte")
	}
}

func TestVarIntRejectsOverlong(t *testing.T) {
	if _, err := DecodeVarInt(make([]byte, 9)); err == nil {
		t.Fatal("expected error for 9-byte payload")
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	want := int64(1421070400)
	payload, err := EncodeTimestamp(want)
	if err != nil {
		t.Fatalf("EncodeTimestamp: %v", err)
	}
	if !bytes.Equal(payload, []byte{0x40, 0x42, 0x0F}) {
		t.Fatalf("EncodeTimestamp(%d) = % x", want, payload)
	}
	got, err := DecodeTimestamp(payload)
	if err != nil {
		t.Fatalf("DecodeTimestamp: %v", err)
	}
	if got != want {
		t.Fatalf("DecodeTimestamp = %d, want %d", got, want)
	}
}

func TestTimestampRejectsNotAfterEpoch(t *testing.T) {
	if _, err := EncodeTimestamp(Epoch); err == nil {
		t.Fatal("expected error encoding the epoch itself")
	}
	if _, err := EncodeTimestamp(Epoch - 10); err == nil {
		t.Fatal("expected error encoding before the epoch")
	}
}

func TestLicenseRoundTrip(t *testing.T) {
	cases := []License{
		LicenseMIT, LicenseBSDNew, LicenseISC, LicenseGPLv3,
		LicenseCCBYv4_0, LicenseCCBYSAv2_0, LicenseCERNv1_2, LicenseProprietary,
	}
	for _, l := range cases {
		got := DecodeLicense(EncodeLicense(l))
		if got != l {
			t.Errorf("License round trip: got %v, want %v", got, l)
		}
		if !l.Known() {
			t.Errorf("%v.Known() = false, want true", l)
		}
	}
}

func TestLicenseUnknownFallback(t *testing.T) {
	l := DecodeLicense([]byte{0x7F})
	if l.Known() {
		t.Fatalf("0x7F should not be a known license, got %v", l)
	}
	if l.String() != "Unknown(0x7f)" {
		t.Fatalf("String() = %q", l.String())
	}
}

func TestSizeOffsetWidthSelection(t *testing.T) {
	cases := []struct {
		offset, size uint64
		want         []byte
	}{
		{5, 10, []byte{0x05, 0x0A}},
		{700, 10, []byte{0xBC, 0x02, 0x0A, 0x00}},
		{0x10000, 1, []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00}},
	}
	for _, c := range cases {
		got := EncodeSizeOffset(c.offset, c.size)
		if !bytes.Equal(got, c.want) {
			t.Errorf("EncodeSizeOffset(%d,%d) = % x, want % x", c.offset, c.size, got, c.want)
		}
		offset, size, err := DecodeSizeOffset(got)
		if err != nil {
			t.Errorf("DecodeSizeOffset(% x): %v", got, err)
		}
		if offset != c.offset || size != c.size {
			t.Errorf("round trip (%d,%d) -> % x -> (%d,%d)", c.offset, c.size, got, offset, size)
		}
	}
}

func TestSizeOffsetRejectsBadLength(t *testing.T) {
	if _, _, err := DecodeSizeOffset([]byte{0x01, 0x02, 0x03}); err == nil {
		t.Fatal("expected error for 3-byte payload")
	}
}
