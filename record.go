package eeprom

import "encoding/binary"

// Record implements the dynamic-length record primitive from §4.2: a
// reusable header pattern of `{..fixed fields.., crc8, declared_length,
// payload[declared_length]}` with a CRC-8 computed over the whole
// record excluding the crc8 byte itself. The atom container header (a
// 4-byte declared_length, with a crc8) is built on this type. An
// atom's own header has no crc8 and a 1-byte declared_length — too
// thin a shape to carry meaningfully over this primitive — so the
// atom package encodes its {type, length, payload} directly; HasCRC
// lets a crc8-less record still round-trip through the same type when
// one is needed.
type Record struct {
	buf []byte

	lengthOffset int // offset of the declared_length field
	lengthSize   int // width of declared_length in bytes: 1 or 4
	crc8Offset   int // offset of the crc8 field, or -1 if the record has none
	suffixSize   int // fixed bytes between the length field and the payload
	capacity     int // max total record size in bytes; 0 means unbounded
}

// NewRecord wraps buf (which already holds the record's fixed prefix,
// with declared_length set to reflect whatever payload buf already
// carries) as a Record. capacity bounds the total record size — it is
// the remaining space in the containing byte image — and is enforced
// by Resize. A capacity of 0 means unbounded.
func NewRecord(buf []byte, lengthOffset, lengthSize, crc8Offset, suffixSize, capacity int) *Record {
	return &Record{
		buf:          buf,
		lengthOffset: lengthOffset,
		lengthSize:   lengthSize,
		crc8Offset:   crc8Offset,
		suffixSize:   suffixSize,
		capacity:     capacity,
	}
}

// PayloadStart returns the offset within Bytes() at which the
// variable-length payload begins.
func (r *Record) PayloadStart() int {
	return r.lengthOffset + r.lengthSize + r.suffixSize
}

// DeclaredLength returns the raw declared_length field value: the
// number of bytes after the length field, i.e. suffix fields plus
// payload.
func (r *Record) DeclaredLength() uint32 {
	switch r.lengthSize {
	case 1:
		return uint32(r.buf[r.lengthOffset])
	case 4:
		return binary.LittleEndian.Uint32(r.buf[r.lengthOffset:])
	default:
		panic("eeprom: unsupported length field width")
	}
}

func (r *Record) writeDeclaredLength(v uint32) {
	switch r.lengthSize {
	case 1:
		r.buf[r.lengthOffset] = byte(v)
	case 4:
		binary.LittleEndian.PutUint32(r.buf[r.lengthOffset:], v)
	default:
		panic("eeprom: unsupported length field width")
	}
}

// EffectiveLength returns the payload length: declared_length minus
// the fixed suffix fields between the length field and the payload.
func (r *Record) EffectiveLength() int {
	return int(r.DeclaredLength()) - r.suffixSize
}

// Resize grows or shrinks the record's backing buffer so that its
// payload is exactly n bytes, and updates declared_length to match. It
// fails with ErrCapacityExceeded before touching the buffer if the new
// total size would exceed the record's capacity.
func (r *Record) Resize(n int) error {
	newTotal := r.PayloadStart() + n
	if r.capacity > 0 && newTotal > r.capacity {
		return ErrCapacityExceeded
	}

	switch {
	case newTotal > len(r.buf):
		r.buf = append(r.buf, make([]byte, newTotal-len(r.buf))...)
	case newTotal < len(r.buf):
		r.buf = r.buf[:newTotal]
	}

	r.writeDeclaredLength(uint32(r.suffixSize + n))
	return nil
}

// Bytes returns the record's full backing bytes, header through
// payload.
func (r *Record) Bytes() []byte {
	return r.buf
}

// Payload returns the record's variable-length payload bytes.
func (r *Record) Payload() []byte {
	start := r.PayloadStart()
	return r.buf[start : start+r.EffectiveLength()]
}

// HasCRC reports whether this record carries a crc8 field at all (the
// atom header does not; the container header does).
func (r *Record) HasCRC() bool {
	return r.crc8Offset >= 0
}

// RecomputeCRC writes crc8 so that CheckCRC returns true. It is a
// fixed point: calling it twice in a row changes no byte.
func (r *Record) RecomputeCRC() {
	if !r.HasCRC() {
		return
	}
	r.buf[r.crc8Offset] = CRCExcluding(r.buf, r.crc8Offset)
}

// CheckCRC reports whether the record's crc8 field matches the CRC-8
// of the rest of the record.
func (r *Record) CheckCRC() bool {
	if !r.HasCRC() {
		return true
	}
	return r.buf[r.crc8Offset] == CRCExcluding(r.buf, r.crc8Offset)
}
