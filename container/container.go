// Package container implements the atom container (spec §4.4): an
// ordered, append-only sequence of atoms bracketed by a magic and a
// reversed-magic sentinel, with a container-level CRC-8.
package container

import (
	"github.com/pkg/errors"

	"hdmi2usb.tv/tofe/eeprom"
	"hdmi2usb.tv/tofe/eeprom/atom"
)

// Version is the only header version this package writes or accepts.
const Version byte = 0x01

// Container wraps the root record primitive with the atom container's
// own header fields — magic, version, atom_count — that sit outside
// the reusable {crc8, declared_length, payload} shape.
type Container struct {
	rec      *eeprom.Record
	magicLen int
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// New creates an empty container: header written, zero atoms, a
// reversed-magic trailer, and a valid CRC. capacity bounds the total
// container size in bytes; 0 means unbounded.
func New(magic []byte, capacity int) (*Container, error) {
	magicLen := len(magic)
	// header (magic, version, atom_count, crc8, total_length) + trailer
	buf := make([]byte, magicLen+7+magicLen)
	copy(buf[0:magicLen], magic)
	buf[magicLen] = Version

	rec := eeprom.NewRecord(buf, magicLen+3, 4, magicLen+2, 0, capacity)
	if err := rec.Resize(magicLen); err != nil {
		return nil, err
	}
	copy(rec.Payload(), reversed(magic))
	rec.RecomputeCRC()

	return &Container{rec: rec, magicLen: magicLen}, nil
}

// Open wraps an existing byte image as a Container without
// reinitializing it, for decoding a previously-built image. capacity
// bounds growth via subsequent Append calls; 0 means unbounded.
func Open(buf []byte, magicLen, capacity int) *Container {
	rec := eeprom.NewRecord(buf, magicLen+3, 4, magicLen+2, 0, capacity)
	return &Container{rec: rec, magicLen: magicLen}
}

// Magic returns the container's magic bytes.
func (c *Container) Magic() []byte {
	return c.rec.Bytes()[0:c.magicLen]
}

// Version returns the container's version byte.
func (c *Container) Version() byte {
	return c.rec.Bytes()[c.magicLen]
}

// AtomCount returns the number of atoms currently stored.
func (c *Container) AtomCount() int {
	return int(c.rec.Bytes()[c.magicLen+1])
}

// Bytes returns the container's full serialized form.
func (c *Container) Bytes() []byte {
	return c.rec.Bytes()
}

// atomsRegion returns the atom bytes, excluding the trailer.
func (c *Container) atomsRegion() []byte {
	payload := c.rec.Payload()
	return payload[:len(payload)-c.magicLen]
}

func (c *Container) trailer() []byte {
	payload := c.rec.Payload()
	return payload[len(payload)-c.magicLen:]
}

// lastType returns the type byte of the last appended atom, used to
// enforce non-decreasing append order.
func (c *Container) lastType() (atom.Type, bool) {
	n := c.AtomCount()
	if n == 0 {
		return 0, false
	}
	v, err := c.Get(n - 1)
	if err != nil {
		return 0, false
	}
	return v.Type, true
}

// Append adds a to the end of the container: atom bytes are inserted
// immediately before the trailer, atom_count and total_length are
// updated, the trailer is re-stamped, and the CRC is recomputed (spec
// §4.4). It fails with ErrOutOfOrder, ErrDanglingReference, or
// ErrCapacityExceeded without mutating the container.
func (c *Container) Append(a atom.Raw) error {
	if last, ok := c.lastType(); ok && a.Type < last {
		return errors.Wrapf(eeprom.ErrOutOfOrder, "type 0x%02x after 0x%02x", byte(a.Type), byte(last))
	}

	if a.Type.Family() == atom.FamilyRelativeURL {
		parentIndex, _, err := atom.DecodeRelativeURL(a.Payload)
		if err != nil {
			return err
		}
		if int(parentIndex) >= c.AtomCount() {
			return errors.Wrapf(eeprom.ErrDanglingReference, "parent index %d not yet appended", parentIndex)
		}
		parent, err := c.Get(int(parentIndex))
		if err != nil {
			return err
		}
		if parent.Type.Family() != atom.FamilyURL {
			return errors.Wrapf(eeprom.ErrDanglingReference, "parent index %d is not an absolute url", parentIndex)
		}
	}

	atomBytes, err := a.Bytes()
	if err != nil {
		return err
	}

	trailer := append([]byte(nil), c.trailer()...)
	oldAtomsLen := len(c.atomsRegion())
	newAtomsLen := oldAtomsLen + len(atomBytes)

	if err := c.rec.Resize(newAtomsLen + c.magicLen); err != nil {
		return err
	}

	payloadStart := c.rec.PayloadStart()
	buf := c.rec.Bytes()
	copy(buf[payloadStart+oldAtomsLen:], atomBytes)
	copy(buf[payloadStart+newAtomsLen:], trailer)

	buf[c.magicLen+1]++
	c.rec.RecomputeCRC()
	return nil
}

// Get decodes the atom at index i, walking the atom region from its
// start. Relative-URL atoms are resolved against their parent atom.
func (c *Container) Get(i int) (AtomView, error) {
	if i < 0 || i >= c.AtomCount() {
		return AtomView{}, errors.Wrapf(eeprom.ErrIndexOutOfBounds, "index %d", i)
	}

	region := c.atomsRegion()
	off := 0
	for j := 0; ; j++ {
		if off+2 > len(region) {
			return AtomView{}, errors.Wrapf(eeprom.ErrIndexOutOfBounds, "index %d", i)
		}
		t := atom.Type(region[off])
		length := int(region[off+1])
		if off+2+length > len(region) {
			return AtomView{}, errors.Wrapf(eeprom.ErrMalformedPayload, "atom %d: truncated payload", j)
		}
		payload := region[off+2 : off+2+length]
		if j == i {
			return c.decode(i, t, payload)
		}
		off += 2 + length
	}
}

// decode interprets t/payload as the atom at index i. For a
// relative-URL atom it resolves the parent link itself rather than
// trusting the wire bytes: parentIndex must be strictly less than i
// and name an absolute-URL atom, mirroring Append's preconditions
// (§3's parent_index invariant applies to any container, not just one
// built through Append). Without this check, a relative-URL atom
// whose parent_index points at itself or at another relative-URL atom
// in a reference cycle would send Get/decode into unbounded mutual
// recursion on untrusted bytes (container.Open, composite images).
func (c *Container) decode(i int, t atom.Type, payload []byte) (AtomView, error) {
	fam, err := atom.FamilyOf(t)
	if err != nil {
		return AtomView{}, err
	}

	v := AtomView{Type: t, Raw: payload}
	switch fam {
	case atom.FamilyString:
		v.Text = atom.DecodeString(payload)
	case atom.FamilyURL:
		v.Text = atom.DecodeURL(payload)
	case atom.FamilyRelativeURL:
		parentIndex, body, err := atom.DecodeRelativeURL(payload)
		if err != nil {
			return AtomView{}, err
		}
		if int(parentIndex) >= i {
			return AtomView{}, errors.Wrapf(eeprom.ErrDanglingReference,
				"atom %d: parent index %d not strictly less than own index", i, parentIndex)
		}
		parent, err := c.Get(int(parentIndex))
		if err != nil {
			return AtomView{}, errors.Wrap(err, "relative url parent")
		}
		if parent.Type.Family() != atom.FamilyURL {
			return AtomView{}, errors.Wrapf(eeprom.ErrDanglingReference,
				"atom %d: parent index %d is not an absolute url", i, parentIndex)
		}
		v.ParentIndex = int(parentIndex)
		v.Text = atom.ResolveRelativeURL(parent.Text, body)
	case atom.FamilyTimestamp:
		ts, err := atom.DecodeTimestamp(payload)
		if err != nil {
			return AtomView{}, err
		}
		v.Timestamp = ts
	case atom.FamilyLicense:
		v.License = atom.DecodeLicense(payload)
	case atom.FamilySizeOffset:
		offset, size, err := atom.DecodeSizeOffset(payload)
		if err != nil {
			return AtomView{}, err
		}
		v.Offset, v.Size = offset, size
	}
	return v, nil
}

// Check validates the reversed-magic trailer against the header's
// magic, the version, the CRC, and every atom's payload
// well-formedness (spec §4.4). The header magic itself is not compared
// against any fixed tag: a Container knows only its magic's length.
func (c *Container) Check() error {
	buf := c.rec.Bytes()
	if len(buf) < c.magicLen+7+c.magicLen {
		return errors.Wrap(eeprom.ErrBadMagic, "container: too short for header and trailer")
	}
	if c.Version() != Version {
		return errors.Wrapf(eeprom.ErrBadVersion, "got 0x%02x", c.Version())
	}
	if !c.rec.CheckCRC() {
		return eeprom.ErrBadCRC
	}
	want := reversed(c.Magic())
	if string(c.trailer()) != string(want) {
		return errors.Wrapf(eeprom.ErrBadMagic, "trailer %q != reversed magic %q", c.trailer(), want)
	}
	for i := 0; i < c.AtomCount(); i++ {
		if _, err := c.Get(i); err != nil {
			return errors.Wrapf(err, "atom %d", i)
		}
	}
	return nil
}
