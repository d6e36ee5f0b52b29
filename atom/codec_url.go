package atom

import "strings"

// stripScheme removes a leading "scheme://" from url, if present.
func stripScheme(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		return url[i+len("://"):]
	}
	return url
}

// EncodeURL encodes an absolute URL as a FamilyURL atom payload: raw
// UTF-8 bytes with any "scheme://" prefix stripped (spec §4.3 — the
// scheme is always "https://" on read, so it is redundant on the
// wire).
func EncodeURL(url string) []byte {
	return []byte(stripScheme(url))
}

// DecodeURL decodes a FamilyURL atom payload, prepending "https://"
// (spec §4.3).
func DecodeURL(payload []byte) string {
	return "https://" + string(payload)
}
