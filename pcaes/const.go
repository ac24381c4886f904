package pcaes

import "math/bits"

// AES is based on the mathematical behavior of binary polynomials
// (polynomials over GF(2)) modulo the irreducible polynomial x⁸ + x⁴ + x³ + x + 1.
// Addition of these binary polynomials corresponds to binary xor.
// Reducing mod poly corresponds to binary xor with poly every
// time a 0x100 bit appears.
const poly = 1<<8 | 1<<4 | 1<<3 | 1<<1 | 1<<0 // x⁸ + x⁴ + x³ + x + 1

// Substitution boxes and the round tables below are filled in by init.
var (
	sbox0 [256]byte // forward S-box
	sbox1 [256]byte // inverse S-box

	// Lookup tables for encryption: each combines SubBytes, ShiftRows
	// and MixColumns for one byte position of a column.
	te0, te1, te2, te3 [256]uint32

	// Lookup tables for decryption, the inverse transforms.
	td0, td1, td2, td3 [256]uint32

	// Powers of x mod poly in GF(2), the round constants.
	powx [16]byte
)

// mul multiplies b and c as GF(2) polynomials modulo poly.
func mul(b, c uint32) uint32 {
	i := b
	j := c
	s := uint32(0)
	for k := uint32(1); k < 0x100 && j != 0; k <<= 1 {
		// Invariant: k == 1<<n, i == b * xⁿ

		if j&k != 0 {
			// s += i in GF(2); xor in binary
			s ^= i
			j ^= k // turn off bit to end loop early
		}

		// i *= x in GF(2) modulo the polynomial
		i <<= 1
		if i&0x100 != 0 {
			i ^= poly
		}
	}
	return s
}

func inverse(b uint32) uint32 {
	if b == 0 {
		return 0
	}
	for c := uint32(1); c < 0x100; c++ {
		if mul(b, c) == 1 {
			return c
		}
	}
	panic("pcaes: element without inverse")
}

func init() {
	for i := 0; i < 256; i++ {
		b := uint8(inverse(uint32(i)))
		s := b ^ bits.RotateLeft8(b, 1) ^ bits.RotateLeft8(b, 2) ^
			bits.RotateLeft8(b, 3) ^ bits.RotateLeft8(b, 4) ^ 0x63
		sbox0[i] = s
		sbox1[s] = uint8(i)
	}

	x := uint32(1)
	for i := range powx {
		powx[i] = byte(x)
		x = mul(x, 2)
	}

	for i := 0; i < 256; i++ {
		s := uint32(sbox0[i])
		w := mul(s, 2)<<24 | s<<16 | s<<8 | mul(s, 3)
		te0[i] = w
		te1[i] = bits.RotateLeft32(w, -8)
		te2[i] = bits.RotateLeft32(w, -16)
		te3[i] = bits.RotateLeft32(w, -24)

		s = uint32(sbox1[i])
		w = mul(s, 0xe)<<24 | mul(s, 0x9)<<16 | mul(s, 0xd)<<8 | mul(s, 0xb)
		td0[i] = w
		td1[i] = bits.RotateLeft32(w, -8)
		td2[i] = bits.RotateLeft32(w, -16)
		td3[i] = bits.RotateLeft32(w, -24)
	}
}
