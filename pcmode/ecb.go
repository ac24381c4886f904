package pcmode

import "crypto/cipher"

type ecbMode struct{}

func (ecbMode) IVSize(int) int { return 0 }

func (ecbMode) String() string { return "ECB" }

func (ecbMode) NewEncrypter(b cipher.Block, _ []byte) cipher.BlockMode {
	return ecb{b: b}
}

func (ecbMode) NewDecrypter(b cipher.Block, _ []byte) cipher.BlockMode {
	return ecb{b: b, decrypt: true}
}

// ecb runs every block through the cipher independently.
type ecb struct {
	b       cipher.Block
	decrypt bool
}

func (x ecb) BlockSize() int { return x.b.BlockSize() }

func (x ecb) CryptBlocks(dst, src []byte) {
	bs := x.b.BlockSize()
	if len(src)%bs != 0 {
		panic("pcmode: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("pcmode: output smaller than input")
	}
	for len(src) > 0 {
		if x.decrypt {
			x.b.Decrypt(dst[:bs], src[:bs])
		} else {
			x.b.Encrypt(dst[:bs], src[:bs])
		}
		src = src[bs:]
		dst = dst[bs:]
	}
}
