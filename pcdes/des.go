// Package pcdes implements the Data Encryption Standard (DES) and the
// Triple Data Encryption Algorithm (TDEA) as defined in U.S. Federal
// Information Processing Standards Publication 46-3.
//
// Both ciphers satisfy cipher.Block and are meant to be driven by the
// chaining modes in package pcmode.
package pcdes

import (
	"crypto/cipher"
	"strconv"
)

// The DES block size in bytes.
const BlockSize = 8

// KeySize is the DES key size in bytes, parity bits included.
const KeySize = 8

// TripleKeySize is the Triple DES key size in bytes: K1, K2 and K3.
const TripleKeySize = 3 * KeySize

type KeySizeError int

func (k KeySizeError) Error() string {
	return "pcdes: invalid key size " + strconv.Itoa(int(k))
}

// desCipher is an instance of DES encryption.
type desCipher struct {
	subkeys [16]uint64
}

// NewCipher creates and returns a new DES cipher. The key schedule is
// computed here, once per instance.
func NewCipher(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}

	c := new(desCipher)
	c.generateSubkeys(key)
	return c, nil
}

func (c *desCipher) BlockSize() int { return BlockSize }

func (c *desCipher) KeySize() int { return KeySize }

// Encrypt encrypts the first block of src into dst.
func (c *desCipher) Encrypt(dst, src []byte) {
	checkBlocks(dst, src)
	cryptBlock(&c.subkeys, dst, src, false)
}

// Decrypt decrypts the first block of src into dst.
func (c *desCipher) Decrypt(dst, src []byte) {
	checkBlocks(dst, src)
	cryptBlock(&c.subkeys, dst, src, true)
}

func checkBlocks(dst, src []byte) {
	if len(src) < BlockSize {
		panic("pcdes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("pcdes: output not full block")
	}
}
