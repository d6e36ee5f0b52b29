package composite

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"

	"hdmi2usb.tv/tofe/eeprom"
	"hdmi2usb.tv/tofe/eeprom/atom"
	"hdmi2usb.tv/tofe/eeprom/fx2"
)

func testStage2() []byte {
	hdr := fx2.EncodeHeader(fx2.Header{VID: OpsisVID, PID: OpsisPID, DID: 0x0001, Config: 0x00})
	return fx2.AppendTerminator(hdr, 0x0000)
}

func TestBuildAndCheck(t *testing.T) {
	stage2 := testStage2()
	atoms := []atom.Raw{
		{Type: atom.ProductID, Payload: atom.EncodeURL("https://opsis.h2u.tv")},
		{Type: atom.PCBRepository, Payload: atom.EncodeRelativeURL(0, "pcb.git")},
		{Type: atom.GUID, Payload: atom.EncodeSizeOffset(0xF8, 8)},
	}

	img, err := Build(stage2, atoms, 0x0000)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(img) != ImageSize {
		t.Fatalf("len(img) = %d, want %d", len(img), ImageSize)
	}
	if !bytes.Equal(img[0:fx2.HeaderSize], stage2[0:fx2.HeaderSize]) {
		t.Fatalf("fx2 header not placed at offset 0")
	}
	for i := PaddingStart; i < MACStart; i++ {
		if img[i] != 0xFF {
			t.Fatalf("img[%d] = 0x%02x, want 0xff", i, img[i])
		}
	}

	parsed, err := Parse(img)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := parsed.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}

	hdr, err := parsed.Header()
	if err != nil {
		t.Fatalf("Header: %v", err)
	}
	if hdr.VID != OpsisVID || hdr.PID != OpsisPID {
		t.Fatalf("Header = %+v", hdr)
	}

	c, err := parsed.Container()
	if err != nil {
		t.Fatalf("Container: %v", err)
	}
	v, err := c.Get(0)
	if err != nil {
		t.Fatalf("Get(0): %v", err)
	}
	if v.Text != "https://opsis.h2u.tv" {
		t.Fatalf("Get(0).Text = %q", v.Text)
	}
}

func TestCheckDetectsOuterCRCMutation(t *testing.T) {
	img, err := Build(testStage2(), nil, 0x0000)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	img[1] ^= 0x01 // VID byte inside the FX2 header, checked only by the outer CRC
	parsed, err := Parse(img)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := parsed.Check(); err == nil {
		t.Fatal("expected Check to fail after mutating a CRC-covered byte")
	}
}

func TestCheckDetectsPaddingMutation(t *testing.T) {
	img, err := Build(testStage2(), nil, 0x0000)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	img[PaddingStart] = 0x00
	img[EEPROMUseful] = eeprom.CRCExcluding(img, EEPROMUseful) // re-stamp so only padding is wrong
	parsed, err := Parse(img)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := parsed.Check(); !errors.Is(err, eeprom.ErrMalformedPayload) {
		t.Fatalf("Check: got %v, want ErrMalformedPayload", err)
	}
}

func TestBuildCapacityExceeded(t *testing.T) {
	hdr := fx2.EncodeHeader(fx2.Header{VID: OpsisVID, PID: OpsisPID})
	chain, err := fx2.AppendSegment(nil, 0x0000, make([]byte, 110))
	if err != nil {
		t.Fatalf("AppendSegment: %v", err)
	}
	chain = fx2.AppendTerminator(chain, 0x0000)
	hugeStage2 := append(hdr, chain...)

	_, err = Build(hugeStage2, []atom.Raw{{Type: atom.GUID, Payload: atom.EncodeSizeOffset(0xF8, 8)}}, 0x0000)
	if !errors.Is(err, eeprom.ErrCapacityExceeded) {
		t.Fatalf("Build: got %v, want ErrCapacityExceeded", err)
	}
}

func TestMACRegionUntouched(t *testing.T) {
	img, err := Build(testStage2(), nil, 0x0000)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := MACStart; i < ImageSize; i++ {
		if img[i] != 0x00 {
			t.Fatalf("img[%d] = 0x%02x, want untouched (0x00)", i, img[i])
		}
	}
}
