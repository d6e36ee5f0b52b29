package eeprom

// Kind identifies which of the two wire shapes a raw byte image uses:
// a bare atom container, or a 256-byte composite image with the
// container embedded inside an FX2 segment chain.
type Kind int

const (
	// KindUnknown means Sniff could not identify the image.
	KindUnknown Kind = iota
	// KindContainer is a standalone atom container (§4.4): it begins
	// with one of the registered container magics.
	KindContainer
	// KindComposite is a 256-byte composite image (§4.5): it begins
	// with the FX2 "C0" load-format marker byte.
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// fx2Marker is the first byte of every FX2 "C0" segmented-load image
// (composite images, §4.5).
const fx2Marker = 0xC0

// knownMagics is the set of container magics Sniff checks a byte
// image's prefix against, registered by the container format's known
// revisions (§9's "authoritative format" note: "TOFE\0" for standalone
// containers, "OP" for the magic embedded in a composite image's
// atom-container segment).
var knownMagics [][]byte

// RegisterMagic adds magic to the set Sniff matches against. Unlike a
// decoder registry that sniffs across many competing formats, there's
// only one decoder here, so registration narrows to just the set of
// magics that identify "this is a container" versus "this is
// something else" — there are no "?" wildcards because EEPROM magics
// are fixed ASCII tags, not version-range probes.
func RegisterMagic(magic []byte) {
	m := make([]byte, len(magic))
	copy(m, magic)
	knownMagics = append(knownMagics, m)
}

func init() {
	RegisterMagic([]byte("TOFE\x00"))
	RegisterMagic([]byte("OP"))
}

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i, c := range prefix {
		if b[i] != c {
			return false
		}
	}
	return true
}

// Sniff determines whether b is a composite image or a standalone
// atom container from its magic-number prefix. It never errors: an
// unrecognized prefix yields KindUnknown, leaving the decision of
// whether that's fatal to the caller — decoders validate, they don't
// panic on adversarial input.
func Sniff(b []byte) Kind {
	if len(b) >= 1 && b[0] == fx2Marker {
		return KindComposite
	}
	for _, magic := range knownMagics {
		if hasPrefix(b, magic) {
			return KindContainer
		}
	}
	return KindUnknown
}
