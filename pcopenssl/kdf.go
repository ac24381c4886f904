package pcopenssl

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	"github.com/ultram4rine/go-paramcodec/pcmd5"
)

// KDF turns a password and salt into a key and an IV of the given sizes.
type KDF func(password, salt []byte, keyLen, ivLen int) (key, iv []byte)

// EVPKDF is OpenSSL's EVP_BytesToKey with MD5 and a single iteration:
// D1 = MD5(password || salt), Di = MD5(Di-1 || password || salt), and the
// concatenation is cut into key and IV.
func EVPKDF(password, salt []byte, keyLen, ivLen int) (key, iv []byte) {
	need := keyLen + ivLen
	out := make([]byte, 0, need+pcmd5.Size)

	var prev []byte
	h := pcmd5.New()
	for len(out) < need {
		h.Reset()
		h.Write(prev)
		h.Write(password)
		h.Write(salt)
		prev = h.Sum(nil)
		out = append(out, prev...)
	}
	return out[:keyLen], out[keyLen:need]
}

// PBKDF2KDF returns a KDF using PBKDF2 with HMAC-SHA256, what
// "openssl enc -pbkdf2 -iter n" does.
func PBKDF2KDF(iterations int) KDF {
	return func(password, salt []byte, keyLen, ivLen int) ([]byte, []byte) {
		dk := pbkdf2.Key(password, salt, iterations, keyLen+ivLen, sha256.New)
		return dk[:keyLen], dk[keyLen:]
	}
}
