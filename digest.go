package paramcodec

import (
	"encoding/hex"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/ultram4rine/go-paramcodec/pcbase64"
	"github.com/ultram4rine/go-paramcodec/pcmd5"
)

// DigestOptions controls how text is fed to MD5 and how the digest is
// rendered when signing.
type DigestOptions struct {
	// Uppercase renders hex digests in upper case.
	Uppercase bool `yaml:"uppercase"`
	// Base64Pad replaces each '=' of a Base64 rendered digest. Empty
	// drops the padding.
	Base64Pad string `yaml:"b64pad"`
	// CharSize is the character width in bits: 8 hashes the UTF-8 bytes
	// of the text, 16 hashes its UTF-16LE code units.
	CharSize int `yaml:"chrsz"`
}

func (o DigestOptions) bytes(text string) []byte {
	if o.CharSize == 16 {
		b, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(text))
		if err == nil {
			return b
		}
	}
	return []byte(text)
}

func (o DigestOptions) hex(sum []byte) string {
	h := hex.EncodeToString(sum)
	if o.Uppercase {
		return strings.ToUpper(h)
	}
	return h
}

func (o DigestOptions) base64(sum []byte) string {
	return strings.ReplaceAll(pcbase64.Encode(sum), "=", o.Base64Pad)
}

// Raw returns the MD5 digest of text.
func (o DigestOptions) Raw(text string) []byte {
	sum := pcmd5.Sum(o.bytes(text))
	return sum[:]
}

// Hex returns the hex MD5 digest of text.
func (o DigestOptions) Hex(text string) string { return o.hex(o.Raw(text)) }

// Base64 returns the Base64 MD5 digest of text.
func (o DigestOptions) Base64(text string) string { return o.base64(o.Raw(text)) }

// HMACHex returns the hex HMAC-MD5 of data under key.
func (o DigestOptions) HMACHex(key, data string) string {
	mac := pcmd5.HMAC(o.bytes(key), o.bytes(data))
	return o.hex(mac[:])
}

// HMACBase64 returns the Base64 HMAC-MD5 of data under key.
func (o DigestOptions) HMACBase64(key, data string) string {
	mac := pcmd5.HMAC(o.bytes(key), o.bytes(data))
	return o.base64(mac[:])
}
