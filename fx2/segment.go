// Package fx2 implements the Cypress FX2-family "C0" segmented boot
// descriptor (spec §4.5): an 8-byte header identifying the USB device,
// followed by a chain of data segments terminated by a segment whose
// length field has its top bit set.
package fx2

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"hdmi2usb.tv/tofe/eeprom"
)

// Marker is the first byte of every FX2 "C0" segmented-load image.
const Marker byte = 0xC0

// TerminatorFlag is the bit that, set in a segment's length field,
// marks it as the chain's terminator.
const TerminatorFlag uint16 = 0x8000

// LengthMask isolates a non-terminator segment's data length from its
// length field.
const LengthMask uint16 = 0x7FFF

// Header is the FX2 load-format header: a device identity the host's
// USB stack reads before the bootloader runs. Unlike the segment
// chain's big-endian length/addr fields, the header's multi-byte
// fields are little-endian (spec §4.5), so it is encoded and decoded
// field-by-field rather than as one fixed-endianness struct.
type Header struct {
	VID, PID, DID uint16
	Config        byte
}

// HeaderSize is the encoded size of Header, including its marker byte.
const HeaderSize = 8

// EncodeHeader serializes h, including the leading marker byte.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	buf[0] = Marker
	binary.LittleEndian.PutUint16(buf[1:3], h.VID)
	binary.LittleEndian.PutUint16(buf[3:5], h.PID)
	binary.LittleEndian.PutUint16(buf[5:7], h.DID)
	buf[7] = h.Config
	return buf
}

// ParseHeader reads an 8-byte FX2 header from the front of buf.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, errors.Wrap(eeprom.ErrBadSegmentChain, "fx2: header truncated")
	}
	if buf[0] != Marker {
		return Header{}, errors.Wrapf(eeprom.ErrBadMagic, "fx2: marker 0x%02x", buf[0])
	}
	return Header{
		VID:    binary.LittleEndian.Uint16(buf[1:3]),
		PID:    binary.LittleEndian.Uint16(buf[3:5]),
		DID:    binary.LittleEndian.Uint16(buf[5:7]),
		Config: buf[7],
	}, nil
}

// Segment is one decoded link of the chain: either a data segment
// (Terminator false, Addr its load address) or the terminator (
// Terminator true, Addr the CPU start address, Data nil).
type Segment struct {
	Addr       uint16
	Data       []byte
	Terminator bool
}

// AppendSegment appends a data segment {length: u16 BE, addr: u16 BE,
// data...} to buf and returns the extended slice. data must be no
// longer than LengthMask bytes.
func AppendSegment(buf []byte, addr uint16, data []byte) ([]byte, error) {
	if len(data) > int(LengthMask) {
		return nil, errors.Wrapf(eeprom.ErrBadSegmentChain, "fx2: segment data length %d exceeds %d", len(data), LengthMask)
	}
	var hdr [4]byte
	binary.BigEndian.PutUint16(hdr[0:2], uint16(len(data)))
	binary.BigEndian.PutUint16(hdr[2:4], addr)
	buf = append(buf, hdr[:]...)
	buf = append(buf, data...)
	return buf, nil
}

// AppendTerminator appends the chain's terminator segment: zero data
// bytes, length field's top bit set, and the CPU start address in
// place of a load address.
func AppendTerminator(buf []byte, startAddr uint16) []byte {
	var hdr [4]byte
	binary.BigEndian.PutUint16(hdr[0:2], TerminatorFlag)
	binary.BigEndian.PutUint16(hdr[2:4], startAddr)
	return append(buf, hdr[:]...)
}

// ParseSegments walks buf from its start, decoding segments until it
// finds the terminator or runs out of bytes. consumed is the number
// of bytes of buf the chain occupied, ending just after the
// terminator.
func ParseSegments(buf []byte) (segs []Segment, consumed int, err error) {
	off := 0
	for {
		if off+4 > len(buf) {
			return nil, 0, errors.Wrap(eeprom.ErrBadSegmentChain, "fx2: truncated segment header")
		}
		length := binary.BigEndian.Uint16(buf[off : off+2])
		addr := binary.BigEndian.Uint16(buf[off+2 : off+4])
		off += 4

		if length&TerminatorFlag != 0 {
			segs = append(segs, Segment{Addr: addr, Terminator: true})
			return segs, off, nil
		}

		n := int(length & LengthMask)
		if off+n > len(buf) {
			return nil, 0, errors.Wrap(eeprom.ErrBadSegmentChain, "fx2: segment data exceeds buffer")
		}
		segs = append(segs, Segment{Addr: addr, Data: buf[off : off+n]})
		off += n
	}
}
