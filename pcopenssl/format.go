// Package pcopenssl implements the OpenSSL "enc" text framing of cipher
// output and the password based key derivations that go with it.
//
// Unsalted output is the Base64 of the bare ciphertext. Salted output is
// the Base64 of "Salted__" followed by the 8-byte salt and the ciphertext.
package pcopenssl

import (
	"bytes"

	"github.com/ultram4rine/go-paramcodec/pcbase64"
)

// SaltSize is the length of an OpenSSL salt in bytes.
const SaltSize = 8

var saltedPrefix = []byte("Salted__")

// CipherParams holds the result of one encryption. Key and IV are kept
// only for the caller's inspection, Stringify does not emit them.
type CipherParams struct {
	Ciphertext []byte
	Key        []byte
	IV         []byte
	Salt       []byte
}

// Stringify renders p in OpenSSL format.
func Stringify(p CipherParams) string {
	if len(p.Salt) == 0 {
		return pcbase64.Encode(p.Ciphertext)
	}
	buf := make([]byte, 0, len(saltedPrefix)+len(p.Salt)+len(p.Ciphertext))
	buf = append(buf, saltedPrefix...)
	buf = append(buf, p.Salt...)
	buf = append(buf, p.Ciphertext...)
	return pcbase64.Encode(buf)
}

// Parse is the inverse of Stringify. Base64 decoding is lenient, so Parse
// never fails; garbage comes back as garbage ciphertext.
func Parse(s string) CipherParams {
	raw := pcbase64.Decode(s)
	if len(raw) >= len(saltedPrefix)+SaltSize && bytes.HasPrefix(raw, saltedPrefix) {
		off := len(saltedPrefix)
		return CipherParams{
			Salt:       raw[off : off+SaltSize],
			Ciphertext: raw[off+SaltSize:],
		}
	}
	return CipherParams{Ciphertext: raw}
}
