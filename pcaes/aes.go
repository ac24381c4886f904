// Package pcaes implements AES encryption (formerly Rijndael), as defined
// in U.S. Federal Information Processing Standards Publication 197.
//
// Keys may be 16, 24 or 32 bytes long, selecting AES-128, AES-192 or
// AES-256. The returned block satisfies cipher.Block.
package pcaes

import (
	"crypto/cipher"
	"strconv"
)

// The AES block size in bytes.
const BlockSize = 16

type KeySizeError int

func (k KeySizeError) Error() string {
	return "pcaes: invalid key size " + strconv.Itoa(int(k))
}

// aesCipher holds the expanded encryption and decryption schedules.
type aesCipher struct {
	enc []uint32
	dec []uint32
}

// NewCipher creates and returns a new cipher.Block.
func NewCipher(key []byte) (cipher.Block, error) {
	k := len(key)
	switch k {
	default:
		return nil, KeySizeError(k)
	case 16, 24, 32:
		break
	}

	n := k + 28
	c := &aesCipher{
		enc: make([]uint32, n),
		dec: make([]uint32, n),
	}
	expandKey(key, c.enc, c.dec)
	return c, nil
}

// Rounds returns the number of AES rounds used for a key of keyLen
// bytes, or 0 for an unsupported length.
func Rounds(keyLen int) int {
	switch keyLen {
	case 16, 24, 32:
		return keyLen/4 + 6
	}
	return 0
}

func (c *aesCipher) BlockSize() int { return BlockSize }

func (c *aesCipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("pcaes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("pcaes: output not full block")
	}
	encryptBlock(c.enc, dst, src)
}

func (c *aesCipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("pcaes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("pcaes: output not full block")
	}
	decryptBlock(c.dec, dst, src)
}
