package eeprom

import "testing"

func TestCRCKnownValue(t *testing.T) {
	// crcmod's 'crc-8' check value: CRC-8 of "123456789" is 0xF4.
	got := CRC([]byte("123456789"))
	if got != 0xF4 {
		t.Fatalf("CRC(\"123456789\") = 0x%02x, want 0xf4", got)
	}
}

func TestCRCExcludingMatchesManualConcat(t *testing.T) {
	b := []byte{0x01, 0x02, 0xAA, 0x03, 0x04}
	got := CRCExcluding(b, 2)
	want := CRC([]byte{0x01, 0x02, 0x03, 0x04})
	if got != want {
		t.Fatalf("CRCExcluding = 0x%02x, want 0x%02x", got, want)
	}
}

func TestCRCExcludingFirstAndLastByte(t *testing.T) {
	b := []byte{0xAA, 0x01, 0x02, 0x03}
	if CRCExcluding(b, 0) != CRC([]byte{0x01, 0x02, 0x03}) {
		t.Fatalf("CRCExcluding(b, 0) mismatch")
	}
	b2 := []byte{0x01, 0x02, 0x03, 0xAA}
	if CRCExcluding(b2, 3) != CRC([]byte{0x01, 0x02, 0x03}) {
		t.Fatalf("CRCExcluding(b, len-1) mismatch")
	}
}
