// Package pcbase64 implements the Base64 framing used by the parameter
// codec: the standard RFC 4648 alphabet with '=' padding on output, and a
// forgiving decoder that never fails on input received from the remote side.
package pcbase64

import (
	"encoding/base64"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const padChar = '='

// invalidIndex marks bytes outside of the alphabet in decodeMap.
const invalidIndex = 0xff

var decodeMap [256]byte

func init() {
	for i := range decodeMap {
		decodeMap[i] = invalidIndex
	}
	for i := 0; i < len(alphabet); i++ {
		decodeMap[alphabet[i]] = byte(i)
	}
}

// Encode returns the padded standard Base64 encoding of src.
func Encode(src []byte) string {
	return base64.StdEncoding.EncodeToString(src)
}

// Decode decodes s best-effort. Characters outside of the alphabet are
// dropped before decoding. Inside every group of four symbols a '=' ends
// the group, so concatenated padded chunks decode one after another. A
// group holding a single symbol carries no complete byte and is skipped.
func Decode(s string) []byte {
	clean := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == padChar || decodeMap[c] != invalidIndex {
			clean = append(clean, c)
		}
	}

	dst := make([]byte, 0, len(clean)/4*3+2)
	for len(clean) > 0 {
		n := 4
		if len(clean) < n {
			n = len(clean)
		}
		group := clean[:n]
		clean = clean[n:]

		var (
			acc     uint32
			symbols int
		)
		for _, c := range group {
			if c == padChar {
				break
			}
			acc = acc<<6 | uint32(decodeMap[c])
			symbols++
		}
		switch symbols {
		case 4:
			dst = append(dst, byte(acc>>16), byte(acc>>8), byte(acc))
		case 3:
			acc <<= 6
			dst = append(dst, byte(acc>>16), byte(acc>>8))
		case 2:
			acc <<= 12
			dst = append(dst, byte(acc>>16))
		}
	}
	return dst
}

// EncodeString encodes the UTF-8 bytes of text. CRLF line breaks are
// folded to LF first.
func EncodeString(text string) string {
	return Encode([]byte(strings.ReplaceAll(text, "\r\n", "\n")))
}

// DecodeString is Decode returning text. The bytes are not checked to be
// valid UTF-8.
func DecodeString(s string) string {
	return string(Decode(s))
}
