package container

import "hdmi2usb.tv/tofe/eeprom/atom"

// AtomView is a decoded atom, discriminated by Type.Family(): only the
// fields relevant to that family carry meaningful values. Raw always
// holds the undecoded payload bytes, borrowed from the container's
// backing buffer — a view must not outlive the container it came
// from, and is invalidated by any subsequent Append (spec §5).
type AtomView struct {
	Type atom.Type
	Raw  []byte

	// Text holds the decoded value for FamilyString, FamilyURL, and
	// FamilyRelativeURL atoms. For a relative URL it is already
	// resolved against its parent (parent.url + "/" + body).
	Text string

	// ParentIndex is the index of the absolute-URL atom a
	// FamilyRelativeURL atom resolves against.
	ParentIndex int

	// Timestamp holds the decoded Unix-seconds value for
	// FamilyTimestamp atoms.
	Timestamp int64

	// License holds the decoded value for FamilyLicense atoms.
	License atom.License

	// Offset and Size hold the decoded pair for FamilySizeOffset atoms.
	Offset, Size uint64
}
