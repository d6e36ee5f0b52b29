package atom

import (
	"github.com/pkg/errors"

	"hdmi2usb.tv/tofe/eeprom"
)

// EncodeRelativeURL encodes a FamilyRelativeURL atom payload: the
// index of the absolute-URL atom this one is relative to, followed by
// the relative body (spec §4.3). The wire form never carries the
// resolved absolute URL — that's a read-time join performed by
// ResolveRelativeURL, using the parent atom looked up by the container.
func EncodeRelativeURL(parentIndex byte, body string) []byte {
	payload := make([]byte, 1+len(body))
	payload[0] = parentIndex
	copy(payload[1:], body)
	return payload
}

// DecodeRelativeURL splits a FamilyRelativeURL atom payload into its
// parent index and relative body.
func DecodeRelativeURL(payload []byte) (parentIndex byte, body string, err error) {
	if len(payload) < 1 {
		return 0, "", errors.Wrap(eeprom.ErrMalformedPayload, "relative url: empty payload")
	}
	return payload[0], string(payload[1:]), nil
}

// ResolveRelativeURL joins a parent's absolute URL with a relative
// body, per spec §4.3: "the decoded value resolves to parent.url +
// '/' + body".
func ResolveRelativeURL(parentURL, body string) string {
	return parentURL + "/" + body
}
