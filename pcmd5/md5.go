// Package pcmd5 implements the MD5 hash algorithm as defined in RFC 1321,
// and HMAC-MD5 on top of it.
//
// MD5 is cryptographically broken. It is here only because the remote API
// derives its keys and request signatures from it.
package pcmd5

import (
	"crypto/hmac"
	"encoding/binary"
	"hash"
	"math"
	"math/bits"
)

// The size of an MD5 checksum in bytes.
const Size = 16

// The blocksize of MD5 in bytes.
const BlockSize = 64

const (
	init0 = 0x67452301
	init1 = 0xEFCDAB89
	init2 = 0x98BADCFE
	init3 = 0x10325476
)

// table[i] = floor(2^32 * |sin(i+1)|)
var table [64]uint32

// Per-operation left rotations, four distinct amounts per round.
var shifts = [64]int{
	7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22,
	5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20,
	4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23,
	6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21,
}

func init() {
	for i := range table {
		table[i] = uint32(math.Floor(math.Abs(math.Sin(float64(i+1))) * (1 << 32)))
	}
}

// digest represents the partial evaluation of a checksum.
type digest struct {
	s   [4]uint32
	x   [BlockSize]byte
	nx  int
	len uint64
}

// New returns a new hash.Hash computing the MD5 checksum.
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

func (d *digest) Reset() {
	d.s[0] = init0
	d.s[1] = init1
	d.s[2] = init2
	d.s[3] = init3
	d.nx = 0
	d.len = 0
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Write(p []byte) (nn int, err error) {
	nn = len(p)
	d.len += uint64(nn)
	if d.nx > 0 {
		n := copy(d.x[d.nx:], p)
		d.nx += n
		if d.nx == BlockSize {
			block(d, d.x[:])
			d.nx = 0
		}
		p = p[n:]
	}
	if len(p) >= BlockSize {
		n := len(p) &^ (BlockSize - 1)
		block(d, p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return
}

func (d *digest) Sum(in []byte) []byte {
	// Make a copy of d so that caller can keep writing and summing.
	d0 := *d
	hash := d0.checkSum()
	return append(in, hash[:]...)
}

func (d *digest) checkSum() [Size]byte {
	// A 1 bit, zeros up to 56 mod 64 bytes, then the bit length as a
	// little-endian uint64.
	tmp := [1 + 63 + 8]byte{0x80}
	pad := (55 - d.len) % 64
	binary.LittleEndian.PutUint64(tmp[1+pad:], d.len<<3)
	d.Write(tmp[:1+pad+8])

	if d.nx != 0 {
		panic("pcmd5: d.nx != 0")
	}

	var digest [Size]byte
	binary.LittleEndian.PutUint32(digest[0:], d.s[0])
	binary.LittleEndian.PutUint32(digest[4:], d.s[1])
	binary.LittleEndian.PutUint32(digest[8:], d.s[2])
	binary.LittleEndian.PutUint32(digest[12:], d.s[3])
	return digest
}

// block runs the compression function over every full 64-byte block of p.
func block(d *digest, p []byte) {
	a, b, c, dd := d.s[0], d.s[1], d.s[2], d.s[3]

	var x [16]uint32
	for len(p) >= BlockSize {
		for i := range x {
			x[i] = binary.LittleEndian.Uint32(p[4*i:])
		}
		aa, bb, cc, ddd := a, b, c, dd

		for i := 0; i < 64; i++ {
			var (
				f uint32
				g int
			)
			switch i >> 4 {
			case 0:
				f = (b & c) | (^b & dd)
				g = i
			case 1:
				f = (b & dd) | (c &^ dd)
				g = (5*i + 1) & 15
			case 2:
				f = b ^ c ^ dd
				g = (3*i + 5) & 15
			default:
				f = c ^ (b | ^dd)
				g = (7 * i) & 15
			}
			f += a + table[i] + x[g]
			a, dd, c = dd, c, b
			b += bits.RotateLeft32(f, shifts[i])
		}

		a += aa
		b += bb
		c += cc
		dd += ddd
		p = p[BlockSize:]
	}

	d.s[0], d.s[1], d.s[2], d.s[3] = a, b, c, dd
}

// Sum returns the MD5 checksum of the data.
func Sum(data []byte) [Size]byte {
	var d digest
	d.Reset()
	d.Write(data)
	return d.checkSum()
}

// NewHMAC returns an HMAC-MD5 hash keyed with key: the key is hashed when
// longer than a block, zero padded to 64 bytes, and XORed with 0x36 for
// the inner and 0x5c for the outer pass.
func NewHMAC(key []byte) hash.Hash {
	return hmac.New(New, key)
}

// HMAC returns the HMAC-MD5 of data under key.
func HMAC(key, data []byte) [Size]byte {
	h := NewHMAC(key)
	h.Write(data)
	var mac [Size]byte
	copy(mac[:], h.Sum(nil))
	return mac
}
