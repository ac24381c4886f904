package pcdes

import "crypto/cipher"

// tripleDESCipher is an instance of Triple DES in EDE form.
type tripleDESCipher struct {
	cipher1, cipher2, cipher3 desCipher
}

// NewTripleDESCipher creates and returns a new Triple DES cipher. The key
// buffer holds three independent DES keys, K1 || K2 || K3.
func NewTripleDESCipher(key []byte) (cipher.Block, error) {
	if len(key) != TripleKeySize {
		return nil, KeySizeError(len(key))
	}

	c := new(tripleDESCipher)
	c.cipher1.generateSubkeys(key[:8])
	c.cipher2.generateSubkeys(key[8:16])
	c.cipher3.generateSubkeys(key[16:])
	return c, nil
}

func (c *tripleDESCipher) BlockSize() int { return BlockSize }

func (c *tripleDESCipher) KeySize() int { return TripleKeySize }

// Encrypt computes E(K3, D(K2, E(K1, block))).
func (c *tripleDESCipher) Encrypt(dst, src []byte) {
	var tmp [BlockSize]byte
	c.cipher1.Encrypt(tmp[:], src)
	c.cipher2.Decrypt(tmp[:], tmp[:])
	c.cipher3.Encrypt(dst, tmp[:])
}

// Decrypt computes D(K1, E(K2, D(K3, block))).
func (c *tripleDESCipher) Decrypt(dst, src []byte) {
	var tmp [BlockSize]byte
	c.cipher3.Decrypt(tmp[:], src)
	c.cipher2.Encrypt(tmp[:], tmp[:])
	c.cipher1.Decrypt(dst, tmp[:])
}
