// Package composite implements the 256-byte composite image (spec
// §4.5) for boards whose EEPROM is shared with an FX2 USB controller:
// the atom container embedded as a segment inside the controller's
// boot descriptor, plus an outer CRC-8 and a reserved vendor tail.
package composite

import (
	"github.com/pkg/errors"

	"hdmi2usb.tv/tofe/eeprom"
	"hdmi2usb.tv/tofe/eeprom/atom"
	"hdmi2usb.tv/tofe/eeprom/container"
	"hdmi2usb.tv/tofe/eeprom/fx2"
)

// ImageSize is the fixed size of a composite image.
const ImageSize = 256

// EEPROMUseful is the size of the region available to the FX2 boot
// descriptor: the stage-2 blob plus the segment chain we append to
// it. The byte immediately after it carries the outer CRC-8.
const EEPROMUseful = 127

// PaddingStart and MACStart bound the 0xFF padding region; MACStart
// through ImageSize is the vendor-written MAC/EUI-64 region, never
// touched by this package.
const (
	PaddingStart = 0x80
	MACStart     = 0xF8
)

// ScratchRAMAddr is the load address the atom-container segment is
// placed at (spec §4.5).
const ScratchRAMAddr = 0xE000

// Magic is the 2-byte magic used for the atom container embedded in a
// composite image (spec §9's "final revision" resolution of the
// magic-length open question).
var Magic = []byte("OP")

// Reference board identity (Opsis), used by callers assembling a
// stage-2 blob's FX2 header; this package never synthesizes the
// header itself — see Build's doc comment.
const (
	OpsisVID uint16 = 0x2A19
	OpsisPID uint16 = 0x5440
)

// Build assembles a 256-byte composite image. stage2 is a
// caller-supplied "stage-2 bootloader" blob (spec §4.5): its own FX2
// header followed by a self-terminating segment chain, exactly as a
// compiled FX2 boot image looks on its own. Build locates stage2's
// existing terminator and replaces it with one more data segment —
// the serialized atom container, loaded at ScratchRAMAddr — followed
// by a new terminator at entryAddr, then zero-pads the rest of the FX2
// region, fills the padding region with 0xFF, and stamps the outer
// CRC-8.
func Build(stage2 []byte, atoms []atom.Raw, entryAddr uint16) ([]byte, error) {
	if _, err := fx2.ParseHeader(stage2); err != nil {
		return nil, errors.Wrap(err, "composite: stage2 header")
	}
	_, consumed, err := fx2.ParseSegments(stage2[fx2.HeaderSize:])
	if err != nil {
		return nil, errors.Wrap(err, "composite: stage2 segment chain")
	}
	prefix := stage2[:fx2.HeaderSize+consumed-4] // drop stage2's own terminator

	c, err := container.New(Magic, 0)
	if err != nil {
		return nil, err
	}
	for i, a := range atoms {
		if err := c.Append(a); err != nil {
			return nil, errors.Wrapf(err, "atom %d", i)
		}
	}
	containerBytes := c.Bytes()

	chain := append([]byte(nil), prefix...)
	chain, err = fx2.AppendSegment(chain, ScratchRAMAddr, containerBytes)
	if err != nil {
		return nil, err
	}
	chain = fx2.AppendTerminator(chain, entryAddr)

	if len(chain) > EEPROMUseful {
		return nil, errors.Wrapf(eeprom.ErrCapacityExceeded,
			"composite: fx2 chain (%d bytes) exceeds %d", len(chain), EEPROMUseful)
	}

	fx2Region := make([]byte, EEPROMUseful)
	copy(fx2Region, chain)

	out := make([]byte, ImageSize)
	copy(out, fx2Region)
	for i := PaddingStart; i < MACStart; i++ {
		out[i] = 0xFF
	}
	out[EEPROMUseful] = eeprom.CRCExcluding(out, EEPROMUseful)
	return out, nil
}

// Image is a parsed 256-byte composite image.
type Image struct {
	buf []byte
}

// Parse wraps a 256-byte image for inspection. It does not validate
// the image's contents — call Check for that.
func Parse(buf []byte) (*Image, error) {
	if len(buf) != ImageSize {
		return nil, errors.Wrapf(eeprom.ErrBadSegmentChain, "composite: length %d != %d", len(buf), ImageSize)
	}
	return &Image{buf: buf}, nil
}

// Bytes returns the image's full 256 bytes.
func (img *Image) Bytes() []byte {
	return img.buf
}

// Header returns the FX2 header at the head of the image.
func (img *Image) Header() (fx2.Header, error) {
	return fx2.ParseHeader(img.buf[0:fx2.HeaderSize])
}

// Segments returns the FX2 data segments following the header, up to
// and including the terminator.
func (img *Image) Segments() ([]fx2.Segment, error) {
	segs, _, err := fx2.ParseSegments(img.buf[fx2.HeaderSize:EEPROMUseful])
	return segs, err
}

// Container locates the atom-container segment (the one loaded at
// ScratchRAMAddr) and wraps its data as a Container.
func (img *Image) Container() (*container.Container, error) {
	segs, err := img.Segments()
	if err != nil {
		return nil, err
	}
	for _, s := range segs {
		if !s.Terminator && s.Addr == ScratchRAMAddr {
			return container.Open(append([]byte(nil), s.Data...), len(Magic), 0), nil
		}
	}
	return nil, errors.Wrap(eeprom.ErrBadSegmentChain, "composite: no atom-container segment")
}

// Check validates every independent component of the image: the FX2
// marker and segment chain (including a present terminator), the
// embedded atom container's own CRC and magic, the 0xFF padding
// region, and the outer CRC-8 (spec §4.5).
func (img *Image) Check() error {
	if img.buf[0] != fx2.Marker {
		return errors.Wrapf(eeprom.ErrBadMagic, "composite: marker 0x%02x", img.buf[0])
	}

	segs, err := img.Segments()
	if err != nil {
		return err
	}
	terminated := false
	for _, s := range segs {
		if s.Terminator {
			terminated = true
		}
	}
	if !terminated {
		return errors.Wrap(eeprom.ErrBadSegmentChain, "composite: no terminator segment")
	}

	for i := PaddingStart; i < MACStart; i++ {
		if img.buf[i] != 0xFF {
			return errors.Wrapf(eeprom.ErrMalformedPayload, "composite: padding byte %d = 0x%02x", i, img.buf[i])
		}
	}

	if want := eeprom.CRCExcluding(img.buf, EEPROMUseful); img.buf[EEPROMUseful] != want {
		return eeprom.ErrBadCRC
	}

	c, err := img.Container()
	if err != nil {
		return err
	}
	if err := c.Check(); err != nil {
		return err
	}
	if string(c.Magic()) != string(Magic) {
		return errors.Wrapf(eeprom.ErrBadMagic, "composite: container magic %q", c.Magic())
	}
	return nil
}
