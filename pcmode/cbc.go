package pcmode

import "crypto/cipher"

type cbcMode struct{}

func (cbcMode) IVSize(blockSize int) int { return blockSize }

func (cbcMode) String() string { return "CBC" }

func (cbcMode) NewEncrypter(b cipher.Block, iv []byte) cipher.BlockMode {
	return newCBC(b, iv, false)
}

func (cbcMode) NewDecrypter(b cipher.Block, iv []byte) cipher.BlockMode {
	return newCBC(b, iv, true)
}

// cbc chains each block with the previous ciphertext block. iv holds the
// running chain value and is private to one BlockMode.
type cbc struct {
	b         cipher.Block
	blockSize int
	iv        []byte
	tmp       []byte
	decrypt   bool
}

func newCBC(b cipher.Block, iv []byte, decrypt bool) *cbc {
	if len(iv) != b.BlockSize() {
		panic("pcmode: IV length must equal block size")
	}
	return &cbc{
		b:         b,
		blockSize: b.BlockSize(),
		iv:        append([]byte(nil), iv...),
		tmp:       make([]byte, b.BlockSize()),
		decrypt:   decrypt,
	}
}

func (x *cbc) BlockSize() int { return x.blockSize }

func (x *cbc) CryptBlocks(dst, src []byte) {
	if len(src)%x.blockSize != 0 {
		panic("pcmode: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("pcmode: output smaller than input")
	}

	if x.decrypt {
		x.decryptBlocks(dst, src)
		return
	}

	bs := x.blockSize
	for len(src) > 0 {
		for i := 0; i < bs; i++ {
			x.tmp[i] = src[i] ^ x.iv[i]
		}
		x.b.Encrypt(dst[:bs], x.tmp)
		copy(x.iv, dst[:bs])

		src = src[bs:]
		dst = dst[bs:]
	}
}

func (x *cbc) decryptBlocks(dst, src []byte) {
	bs := x.blockSize
	for len(src) > 0 {
		// src and dst may alias, keep the ciphertext block for chaining.
		copy(x.tmp, src[:bs])
		x.b.Decrypt(dst[:bs], src[:bs])
		for i := 0; i < bs; i++ {
			dst[i] ^= x.iv[i]
		}
		x.iv, x.tmp = x.tmp, x.iv

		src = src[bs:]
		dst = dst[bs:]
	}
}
